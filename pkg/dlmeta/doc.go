// Package dlmeta defines the public contracts shared by the dlmeta packages:
// the metadata document type, the migration function type, the schema
// resolver and validator interfaces, the logger, and the error kinds returned
// by validation and migration.
//
// Implementations live under internal/; pkg/metadata is the library entry
// point that wires them together.
package dlmeta
