// Package scanner discovers metadata documents in a directory tree.
//
// Files with a .json, .yaml or .yml extension are reported in walk order
// together with their content and checksums. Hidden entries and JSON Schema
// files (*.schema.json) are skipped, so a schema directory can live next to
// the documents it describes.
//
// The scanner works against filesystem.FileSystemProvider, enabling both
// production use with the OS filesystem and testing with in-memory filesystems.
package scanner
