// Package migrations holds the built-in metadata migrations, in the order
// they must be registered.
//
// A migration mutates the document in place and writes its target version
// through a dlmeta.VersionStamper. Add new migrations at the end of builtin;
// the engine never revisits an earlier entry.
package migrations

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/datalake-metadata/dlmeta/internal/registry"
	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
)

// Definition describes a built-in migration.
type Definition struct {
	// Source is the range of versions the migration applies to.
	Source string
	// Target is the version the migration stamps.
	Target string
	// Description says what the migration changes.
	Description string

	build func(stamper dlmeta.VersionStamper, target *semver.Version) dlmeta.Migration
}

// Migration returns the migration function bound to stamper.
func (d Definition) Migration(stamper dlmeta.VersionStamper) dlmeta.Migration {
	return d.build(stamper, semver.MustParse(d.Target))
}

// Sources end in "-0" so that prereleases of the target, which the stamper
// produces for development builds, are not migrated again.
var builtin = []Definition{
	{
		Source:      "<0.1.0-0",
		Target:      "0.1.0",
		Description: "Sample_Sheet becomes the Sample_Sheets list",
		build:       sampleSheetsList,
	},
}

// Definitions returns the built-in migrations in registration order.
func Definitions() []Definition {
	return append([]Definition(nil), builtin...)
}

// Register appends every built-in migration to r.
func Register(r *registry.Registry, stamper dlmeta.VersionStamper) error {
	if stamper == nil {
		return fmt.Errorf("register migrations: nil stamper")
	}
	for _, d := range builtin {
		if err := r.Register(d.Source, d.Migration(stamper)); err != nil {
			return err
		}
	}
	return nil
}

// Default returns a new registry holding the built-in migrations.
func Default(stamper dlmeta.VersionStamper) *registry.Registry {
	r := registry.New()
	if err := Register(r, stamper); err != nil {
		panic(err)
	}
	return r
}

const (
	fieldSampleSheet  = "Sample_Sheet"
	fieldSampleSheets = "Sample_Sheets"
)

func sampleSheetsList(stamper dlmeta.VersionStamper, target *semver.Version) dlmeta.Migration {
	return func(doc dlmeta.Document) error {
		sheet, ok := doc[fieldSampleSheet]
		switch {
		case ok:
			delete(doc, fieldSampleSheet)
			doc[fieldSampleSheets] = []any{sheet}
		case doc[fieldSampleSheets] == nil:
			return fmt.Errorf("document has neither %s nor %s", fieldSampleSheet, fieldSampleSheets)
		}
		stamper.Stamp(doc, target)
		return nil
	}
}
