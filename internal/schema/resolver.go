package schema

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/go-openapi/spec"

	"github.com/datalake-metadata/dlmeta/internal/files/filesystem"
	"github.com/datalake-metadata/dlmeta/internal/version"
	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
	"github.com/datalake-metadata/dlmeta/schemas"
)

var schemaFilePattern = regexp.MustCompile(`^metadata-v(?P<version>.+)\.schema\.json$`)

// FileName returns the schema file name for a version.
func FileName(v *semver.Version) string {
	return fmt.Sprintf(dlmeta.SchemaFileTemplate, version.Core(v))
}

// FSResolver resolves schemas from files named after their version.
// Compiled schemas are cached; FSResolver is safe for concurrent use.
type FSResolver struct {
	fsProvider filesystem.FileSystemProvider

	mu    sync.Mutex
	cache map[string]*spec.Schema
}

// NewFSResolver creates a resolver over the root of fsProvider.
// Panics if fsProvider is nil.
func NewFSResolver(fsProvider filesystem.FileSystemProvider) *FSResolver {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &FSResolver{
		fsProvider: fsProvider,
		cache:      make(map[string]*spec.Schema),
	}
}

// Embedded returns a resolver over the schema files bundled with the library.
func Embedded() *FSResolver {
	return NewFSResolver(filesystem.NewFSFileSystem(schemas.FS, ".", "embedded"))
}

// Dir returns a resolver over the schema files in an OS directory.
func Dir(path string) *FSResolver {
	return NewFSResolver(filesystem.NewOSFileSystem(path))
}

// Resolve implements dlmeta.SchemaResolver.
func (r *FSResolver) Resolve(v *semver.Version) (*spec.Schema, error) {
	key := version.Core(v)

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.cache[key]; ok {
		return s, nil
	}

	name := FileName(v)
	raw, err := r.fsProvider.ReadFile(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &dlmeta.SchemaResolutionError{Version: key, Key: name}
		}
		return nil, &dlmeta.SchemaResolutionError{Version: key, Key: name, Err: err}
	}

	s, err := Compile(raw)
	if err != nil {
		return nil, &dlmeta.SchemaResolutionError{Version: key, Key: name, Err: err}
	}
	r.cache[key] = s
	return s, nil
}

// Raw returns the unparsed schema file for a version.
func (r *FSResolver) Raw(v *semver.Version) ([]byte, error) {
	name := FileName(v)
	raw, err := r.fsProvider.ReadFile(name)
	if err != nil {
		return nil, &dlmeta.SchemaResolutionError{Version: version.Core(v), Key: name, Err: err}
	}
	return raw, nil
}

// Versions lists the schema versions available, in ascending order.
// Files that do not follow the naming convention are ignored.
func (r *FSResolver) Versions() ([]*semver.Version, error) {
	infos, err := r.fsProvider.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("list schemas in %s: %w", r.fsProvider.Location(), err)
	}

	var versions []*semver.Version
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		m := schemaFilePattern.FindStringSubmatch(info.Name())
		if m == nil {
			continue
		}
		v, err := version.Parse(m[schemaFilePattern.SubexpIndex("version")])
		if err != nil {
			continue
		}
		versions = append(versions, v)
	}
	sort.Sort(semver.Collection(versions))
	return versions, nil
}

// Location describes where schemas are read from.
func (r *FSResolver) Location() string {
	return r.fsProvider.Location()
}
