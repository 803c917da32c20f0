package engine

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/datalake-metadata/dlmeta/internal/logging"
	"github.com/datalake-metadata/dlmeta/internal/registry"
	"github.com/datalake-metadata/dlmeta/internal/version"
	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
)

// Engine applies registered migrations to documents.
// It holds no per-call state and is safe for concurrent use as long as the
// registry is no longer modified.
type Engine struct {
	registry  *registry.Registry
	validator dlmeta.DocumentValidator
	logger    dlmeta.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for migration progress. Defaults to a NullLogger.
func WithLogger(logger dlmeta.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an engine over reg that validates after every migration.
// Panics if reg or validator is nil.
func New(reg *registry.Registry, validator dlmeta.DocumentValidator, opts ...Option) *Engine {
	if reg == nil {
		panic("registry cannot be nil")
	}
	if validator == nil {
		panic("validator cannot be nil")
	}
	e := &Engine{
		registry:  reg,
		validator: validator,
		logger:    logging.Discard,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Migrate advances doc until its version matches target and returns doc.
//
// Errors:
//   - *dlmeta.VersionError when the version field is missing or malformed
//   - *dlmeta.MigrationError when a migration function fails
//   - any validator error after a migration, typically *dlmeta.ValidationError
//   - *dlmeta.NoMigrationPathError when the pass ends outside target
//
// On error the returned document is nil and doc keeps any changes already made.
func (e *Engine) Migrate(doc dlmeta.Document, target *semver.Constraints) (dlmeta.Document, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: nil target range", dlmeta.ErrInvalidVersionSpec)
	}

	current, err := version.Of(doc)
	if err != nil {
		return nil, err
	}
	initial := current.Original()

	if target.Check(current) {
		e.logger.Verbose("Version %s already satisfies %s", initial, target)
		return doc, nil
	}

	applied := 0
	for i, entry := range e.registry.Entries() {
		if target.Check(current) {
			break
		}
		if !entry.Matches(current) {
			e.logger.Verbose("Skipping migration #%d (%s): version %s not in range", i, entry.Source, current.Original())
			continue
		}

		from := current.Original()
		if err := entry.Migration(doc); err != nil {
			return nil, &dlmeta.MigrationError{Index: i, Source: entry.Source.String(), From: from, Err: err}
		}
		applied++

		if err := e.validator.Validate(doc); err != nil {
			return nil, fmt.Errorf("after migration #%d (%s) from %s: %w", i, entry.Source, from, err)
		}
		current, err = version.Of(doc)
		if err != nil {
			return nil, err
		}
		e.logger.Verbose("Applied migration #%d (%s): %s -> %s", i, entry.Source, from, current.Original())
	}

	if !target.Check(current) {
		return nil, &dlmeta.NoMigrationPathError{
			Target:  target.String(),
			Initial: initial,
			Reached: current.Original(),
			Applied: applied,
		}
	}

	e.logger.Verbose("Migrated %s -> %s in %d step(s)", initial, current.Original(), applied)
	return doc, nil
}

// MigrateTo is Migrate with a range expression such as "=0.1.*".
func (e *Engine) MigrateTo(doc dlmeta.Document, target string) (dlmeta.Document, error) {
	c, err := version.ParseSpec(target)
	if err != nil {
		return nil, err
	}
	return e.Migrate(doc, c)
}
