package schema

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
)

// Source is a schema resolver that can also enumerate and export its schemas.
type Source interface {
	dlmeta.SchemaResolver

	// Raw returns the schema body bound to a version.
	Raw(v *semver.Version) ([]byte, error)

	// Versions lists the available schema versions in ascending order.
	Versions() ([]*semver.Version, error)

	// Location describes where schemas come from.
	Location() string
}

var (
	_ Source = (*FSResolver)(nil)
	_ Source = (*Catalog)(nil)
)

// Latest returns the highest schema version available in src.
func Latest(src Source) (*semver.Version, error) {
	versions, err := src.Versions()
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: %s contains no schemas", dlmeta.ErrSchemaNotFound, src.Location())
	}
	return versions[len(versions)-1], nil
}
