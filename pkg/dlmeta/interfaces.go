package dlmeta

import (
	"context"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/go-openapi/spec"
)

// SchemaResolver returns the JSON Schema bound to a document version.
// Implementations look the schema up by the version truncated to
// major.minor.patch and return an error wrapping ErrSchemaNotFound when no
// schema exists for it.
type SchemaResolver interface {
	Resolve(v *semver.Version) (*spec.Schema, error)
}

// DocumentValidator checks a document against the schema of its declared version.
type DocumentValidator interface {
	Validate(doc Document) error
}

// VersionStamper writes a migration's target version into a document.
// Migrations call it instead of assigning the version field themselves.
type VersionStamper interface {
	Stamp(doc Document, proposed *semver.Version) *semver.Version
}

// Logger provides a pluggable logging interface.
// Implementations must be safe for concurrent use by multiple goroutines.
type Logger interface {
	// Verbose logs detailed diagnostic information.
	// Only logged when verbose mode is enabled.
	Verbose(format string, args ...interface{})

	// Info logs informational messages about normal operations.
	Info(format string, args ...interface{})

	// Error logs error messages.
	Error(format string, args ...interface{})
}

// Approver confirms an operation that replaces stored data.
type Approver interface {
	// RequestApproval returns true when the change may proceed.
	RequestApproval(ctx context.Context, prompt string) (bool, error)
}

// ErrorClassifier determines whether an error is transient (retryable) or fatal.
type ErrorClassifier interface {
	IsTransient(err error) bool
}

// BackoffStrategy calculates the delay before the next retry attempt.
type BackoffStrategy interface {
	// NextDelay returns the duration to wait before the next attempt.
	// attempt is zero-indexed (0 = first retry).
	NextDelay(attempt int) time.Duration

	// MaxAttempts returns the maximum number of retry attempts (0 = no retries, -1 = unlimited).
	MaxAttempts() int
}
