// Package schema resolves and applies the JSON Schema bound to a metadata
// document version.
//
// Each schema version major.minor.patch has exactly one schema. Documents are
// looked up by their declared version truncated to major.minor.patch, so
// 0.1.0-dev7+gabc and 0.1.0 share a schema. A missing schema is a fatal
// *dlmeta.SchemaResolutionError; lookups are never retried.
//
// Resolvers:
//   - FSResolver reads metadata-v<version>.schema.json from a
//     filesystem.FileSystemProvider on first use and caches the compiled
//     schema.
//   - Catalog holds schemas added explicitly, for example rows loaded from the
//     PostgreSQL schema store.
//
// Validator applies the resolved schema with github.com/go-openapi/validate
// and reports every violation with its path.
package schema
