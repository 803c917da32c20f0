// Package filesystem provides read-only filesystem abstractions.
//
// Schema files and metadata documents are read through a FileSystemProvider
// so the same code serves the embedded schema set, a schema directory on
// disk, and in-memory fixtures in tests.
//
// Implementations:
//   - OSFileSystem: the operating system filesystem
//   - FSFileSystem: any fs.FS rooted at a sub-directory (embed.FS in production)
//   - MemoryFileSystem: in-memory files for tests
//
// Missing files are reported with errors wrapping fs.ErrNotExist.
package filesystem
