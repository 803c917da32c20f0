package dlmeta

// Exit codes for semantic error classification.
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error
//   - 3+: Application-specific errors
const (
	ExitSuccess          = 0  // Command completed successfully
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic            = 3  // Internal panic
	ExitConfigError      = 10 // Invalid configuration or version range
	ExitSchemaNotFound   = 11 // No schema for the document version
	ExitValidationFailed = 12 // Document violates its schema
	ExitNoMigrationPath  = 13 // Target range unreachable with the registered migrations
	ExitMalformedVersion = 14 // Missing or unparsable version field
	ExitConnectionError  = 15 // Schema database unreachable
)

const (
	// VersionField is the document key holding the semantic version string.
	VersionField = "version"

	// SchemaFileTemplate names the schema file for a truncated version.
	// The single verb receives "major.minor.patch".
	SchemaFileTemplate = "metadata-v%s.schema.json"
)
