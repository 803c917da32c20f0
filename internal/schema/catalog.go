package schema

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/go-openapi/spec"

	"github.com/datalake-metadata/dlmeta/internal/version"
	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
)

// Catalog is an in-memory set of schemas keyed by truncated version.
// Populate it during setup; it is safe for concurrent reads afterwards and
// guarded for concurrent writes.
type Catalog struct {
	name string

	mu      sync.RWMutex
	schemas map[string]*spec.Schema
	raw     map[string][]byte
}

// NewCatalog creates an empty catalog; name is used in diagnostics.
func NewCatalog(name string) *Catalog {
	return &Catalog{
		name:    name,
		schemas: make(map[string]*spec.Schema),
		raw:     make(map[string][]byte),
	}
}

// Add compiles raw and binds it to the truncated form of v, replacing any
// schema already bound to that version.
func (c *Catalog) Add(v *semver.Version, raw []byte) error {
	s, err := Compile(raw)
	if err != nil {
		return fmt.Errorf("schema %s: %w", version.Core(v), err)
	}
	key := version.Core(v)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.schemas[key] = s
	c.raw[key] = append([]byte(nil), raw...)
	return nil
}

// Resolve implements dlmeta.SchemaResolver.
func (c *Catalog) Resolve(v *semver.Version) (*spec.Schema, error) {
	key := version.Core(v)

	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.schemas[key]
	if !ok {
		return nil, &dlmeta.SchemaResolutionError{Version: key, Key: c.name + ":" + key}
	}
	return s, nil
}

// Raw returns the schema body bound to v.
func (c *Catalog) Raw(v *semver.Version) ([]byte, error) {
	key := version.Core(v)

	c.mu.RLock()
	defer c.mu.RUnlock()
	raw, ok := c.raw[key]
	if !ok {
		return nil, &dlmeta.SchemaResolutionError{Version: key, Key: c.name + ":" + key}
	}
	return raw, nil
}

// Versions lists the catalogued versions in ascending order.
func (c *Catalog) Versions() ([]*semver.Version, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	versions := make([]*semver.Version, 0, len(c.schemas))
	for key := range c.schemas {
		v, err := version.Parse(key)
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	sort.Sort(semver.Collection(versions))
	return versions, nil
}

// Location describes where the catalog was loaded from.
func (c *Catalog) Location() string {
	return c.name
}
