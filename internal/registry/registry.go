// Package registry holds the ordered list of migrations a migration engine walks.
//
// Insertion order is the migration path. Entries must be registered from the
// oldest applicable source range to the newest; the engine makes a single
// pass and never returns to an earlier entry. Ranges may overlap and are not
// checked for gaps.
//
// A Registry is populated once during setup and then only read. It is not
// safe to register while migrations are running.
package registry

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/datalake-metadata/dlmeta/internal/version"
	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
)

// Entry pairs a source range with the migration that upgrades matching documents.
type Entry struct {
	Source    *semver.Constraints
	Migration dlmeta.Migration
}

// Matches reports whether the entry applies to v.
func (e Entry) Matches(v *semver.Version) bool {
	return e.Source.Check(v)
}

// Registry is an ordered collection of migration entries.
type Registry struct {
	entries []Entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{}
}

// Register appends a migration for documents whose version matches source.
func (r *Registry) Register(source string, m dlmeta.Migration) error {
	c, err := version.ParseSpec(source)
	if err != nil {
		return fmt.Errorf("register migration: %w", err)
	}
	return r.RegisterSpec(c, m)
}

// RegisterSpec appends a migration under an already parsed range.
func (r *Registry) RegisterSpec(source *semver.Constraints, m dlmeta.Migration) error {
	if source == nil {
		return fmt.Errorf("register migration: %w: nil source range", dlmeta.ErrInvalidVersionSpec)
	}
	if m == nil {
		return fmt.Errorf("register migration for %s: nil migration", source)
	}
	r.entries = append(r.entries, Entry{Source: source, Migration: m})
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(source string, m dlmeta.Migration) *Registry {
	if err := r.Register(source, m); err != nil {
		panic(err)
	}
	return r
}

// Entries returns the entries in registration order.
// The returned slice is a copy; modifying it does not affect the registry.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	return len(r.entries)
}
