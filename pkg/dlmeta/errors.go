package dlmeta

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure kinds of validation and migration.
// Structured errors below unwrap to these, so callers can use errors.Is:
//
//	doc, err := metadata.Loads(data, "=0.1.*")
//	if errors.Is(err, dlmeta.ErrNoMigrationPath) {
//	    // upgrade the library or relax the target range
//	}
var (
	// ErrSchemaNotFound indicates no schema is registered for a document's truncated version.
	ErrSchemaNotFound = errors.New("schema not found")

	// ErrSchemaValidation indicates a document violates its schema.
	ErrSchemaValidation = errors.New("schema validation failed")

	// ErrNoMigrationPath indicates the registry was exhausted before the target range was reached.
	ErrNoMigrationPath = errors.New("no migration path")

	// ErrMalformedVersion indicates the version field is missing or not a semantic version.
	ErrMalformedVersion = errors.New("malformed version")

	// ErrInvalidVersionSpec indicates a version range expression could not be parsed.
	ErrInvalidVersionSpec = errors.New("invalid version spec")

	// ErrMigrationFailed indicates a migration function returned an error.
	ErrMigrationFailed = errors.New("migration failed")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsupportedInput indicates the input could not be decoded into a document.
	ErrUnsupportedInput = errors.New("unsupported input")

	// ErrConnectionFailed indicates the schema database could not be reached.
	ErrConnectionFailed = errors.New("connection failed")
)

// SchemaResolutionError reports that no schema exists for a version.
type SchemaResolutionError struct {
	Version string // truncated version that was looked up
	Key     string // storage key (file name or table key) that was tried
	Err     error  // underlying storage error, may be nil
}

func (e *SchemaResolutionError) Error() string {
	msg := fmt.Sprintf("no schema for version %s", e.Version)
	if e.Key != "" {
		msg += fmt.Sprintf(" (looked up %s)", e.Key)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SchemaResolutionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSchemaNotFound}
	}
	return []error{ErrSchemaNotFound, e.Err}
}

// Violation is a single schema constraint failure.
type Violation struct {
	Path    string // dotted path to the offending value, empty for the document root
	Message string
}

func (v Violation) String() string {
	if v.Path == "" || strings.HasPrefix(v.Message, v.Path) {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

// ValidationError reports that a document does not satisfy the schema of its version.
type ValidationError struct {
	Version    string
	Violations []Violation
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "document version %s does not match its schema", e.Version)
	for i, v := range e.Violations {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(v.String())
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error { return ErrSchemaValidation }

// NoMigrationPathError reports that the target range was not reached.
type NoMigrationPathError struct {
	Target  string // target range expression
	Initial string // version before migration
	Reached string // version after the registry pass
	Applied int    // number of migrations applied during the pass
}

// NothingApplied reports whether no registered migration matched the initial version.
func (e *NoMigrationPathError) NothingApplied() bool { return e.Applied == 0 }

func (e *NoMigrationPathError) Error() string {
	if e.NothingApplied() {
		return fmt.Sprintf("cannot migrate version %s to %s: no registered migration applies", e.Initial, e.Target)
	}
	return fmt.Sprintf("cannot migrate version %s to %s: ran out of registered migrations at %s after %d step(s)",
		e.Initial, e.Target, e.Reached, e.Applied)
}

func (e *NoMigrationPathError) Unwrap() error { return ErrNoMigrationPath }

// VersionError reports a missing or malformed version field.
type VersionError struct {
	Value any   // raw value found in the field, nil when absent
	Err   error // parse error, nil when the field is absent or not a string
}

func (e *VersionError) Error() string {
	switch {
	case e.Value == nil:
		return fmt.Sprintf("document has no %q field", VersionField)
	case e.Err != nil:
		return fmt.Sprintf("invalid %s %v: %v", VersionField, e.Value, e.Err)
	default:
		return fmt.Sprintf("%s must be a string, got %T", VersionField, e.Value)
	}
}

func (e *VersionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedVersion}
	}
	return []error{ErrMalformedVersion, e.Err}
}

// MigrationError reports a migration function that returned an error.
type MigrationError struct {
	Index  int    // position of the entry in the registry
	Source string // source range the entry is registered under
	From   string // document version before the migration ran
	Err    error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration #%d (%s) failed on version %s: %v", e.Index, e.Source, e.From, e.Err)
}

func (e *MigrationError) Unwrap() []error { return []error{ErrMigrationFailed, e.Err} }

// ExitCodeForError returns the exit code for an error.
// Returns ExitSuccess for nil, a semantic code for known kinds and
// ExitGeneralError otherwise.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrInvalidVersionSpec):
		return ExitConfigError
	case errors.Is(err, ErrSchemaNotFound):
		return ExitSchemaNotFound
	case errors.Is(err, ErrSchemaValidation):
		return ExitValidationFailed
	case errors.Is(err, ErrNoMigrationPath):
		return ExitNoMigrationPath
	case errors.Is(err, ErrMalformedVersion):
		return ExitMalformedVersion
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrUnsupportedInput):
		return ExitUsageError
	}

	// cobra reports usage problems as plain errors
	errStr := err.Error()
	for _, prefix := range usagePrefixes {
		if strings.HasPrefix(errStr, prefix) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}

var usagePrefixes = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
	"missing required argument",
	"if any flags in the group",
}
