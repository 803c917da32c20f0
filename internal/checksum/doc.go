// Package checksum computes content checksums for schema documents.
//
// Two checksums are produced for every schema body:
//   - raw: SHA-256 of the exact bytes
//   - normalized: SHA-256 of the canonical JSON encoding (object keys sorted,
//     insignificant whitespace removed), so reformatting a schema file does not
//     register as a change
//
// The schema store records both to detect drift between a local schema file
// and the copy pushed to the database.
package checksum
