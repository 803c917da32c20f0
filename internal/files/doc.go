// Package files groups the file access used by dlmeta:
//   - filesystem: read-only filesystem providers (OS directory, embedded or any fs.FS, in-memory)
//   - scanner: discovery of metadata documents in a directory tree
package files
