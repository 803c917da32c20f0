// Package migrationtest checks that a migration registry keeps the contract
// the engine relies on.
//
// Every applied migration must advance the document version by at least one
// patch at major.minor.patch precision, write the version through the stamper
// exactly once, and leave a document that validates. The engine in turn must
// validate exactly once after each applied migration.
package migrationtest

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datalake-metadata/dlmeta/internal/engine"
	"github.com/datalake-metadata/dlmeta/internal/registry"
	"github.com/datalake-metadata/dlmeta/internal/version"
	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
)

// Builder constructs a registry whose migrations stamp through stamper.
type Builder func(stamper dlmeta.VersionStamper) *registry.Registry

// CountingStamper wraps a stamper and counts Stamp calls.
type CountingStamper struct {
	dlmeta.VersionStamper
	calls int
}

// Stamp implements dlmeta.VersionStamper.
func (s *CountingStamper) Stamp(doc dlmeta.Document, proposed *semver.Version) *semver.Version {
	s.calls++
	return s.VersionStamper.Stamp(doc, proposed)
}

// Calls returns the number of Stamp calls since the last Reset.
func (s *CountingStamper) Calls() int { return s.calls }

// Reset zeroes the call counter.
func (s *CountingStamper) Reset() { s.calls = 0 }

// CountingValidator wraps a validator and counts Validate calls.
type CountingValidator struct {
	dlmeta.DocumentValidator
	calls int
}

// Validate implements dlmeta.DocumentValidator.
func (v *CountingValidator) Validate(doc dlmeta.Document) error {
	v.calls++
	return v.DocumentValidator.Validate(doc)
}

// Calls returns the number of Validate calls since the last Reset.
func (v *CountingValidator) Calls() int { return v.calls }

// Reset zeroes the call counter.
func (v *CountingValidator) Reset() { v.calls = 0 }

// CheckEntries walks the registry built by build in registration order,
// applying every entry that matches the current version of doc, and reports
// a failure for each applied migration that breaks the contract.
// It returns the number of migrations applied; doc is mutated along the way.
func CheckEntries(t testing.TB, build Builder, validator dlmeta.DocumentValidator, doc dlmeta.Document) int {
	t.Helper()

	stamper := &CountingStamper{VersionStamper: version.NewStamper(nil)}
	reg := build(stamper)

	applied := 0
	for i, entry := range reg.Entries() {
		before, err := version.Of(doc)
		require.NoError(t, err, "version before migration #%d", i)
		if !entry.Matches(before) {
			continue
		}

		stamper.Reset()
		require.NoError(t, entry.Migration(doc), "migration #%d (%s)", i, entry.Source)
		applied++

		after, err := version.Of(doc)
		require.NoError(t, err, "version after migration #%d", i)
		assert.True(t, version.Advanced(before, after),
			"migration #%d (%s) must advance the version at least one patch: %s -> %s", i, entry.Source, before, after)
		assert.Equal(t, 1, stamper.Calls(),
			"migration #%d (%s) must stamp the version exactly once", i, entry.Source)
		require.NoError(t, validator.Validate(doc),
			"document after migration #%d (%s) must validate", i, entry.Source)
	}
	return applied
}

// CheckEngine migrates doc to target with the registry built by build and
// asserts the engine validated exactly once per applied migration.
func CheckEngine(t testing.TB, build Builder, validator dlmeta.DocumentValidator, doc dlmeta.Document, target string) dlmeta.Document {
	t.Helper()

	stamper := &CountingStamper{VersionStamper: version.NewStamper(nil)}
	source := build(stamper)

	applied := 0
	counted := registry.New()
	for _, entry := range source.Entries() {
		m := entry.Migration
		require.NoError(t, counted.RegisterSpec(entry.Source, func(doc dlmeta.Document) error {
			applied++
			return m(doc)
		}))
	}

	counting := &CountingValidator{DocumentValidator: validator}
	out, err := engine.New(counted, counting).MigrateTo(doc, target)
	require.NoError(t, err)
	assert.Equal(t, applied, counting.Calls(), "the engine must validate once per applied migration")
	assert.Equal(t, applied, stamper.Calls(), "each applied migration must stamp once")
	return out
}
