package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo.
type FileInfo = fs.FileInfo

// File is a regular file discovered while walking a directory.
type File interface {
	// Path returns the path of the file as understood by its provider.
	Path() string

	// RelativePath returns the slash-separated path relative to the walked directory.
	RelativePath() string

	// Info returns file metadata.
	Info() FileInfo

	// ReadContent returns the file's content.
	ReadContent() ([]byte, error)
}

// Directory is a directory that can be traversed.
type Directory interface {
	// Path returns the path of the directory.
	Path() string

	// Walk calls fn for every entry below the directory, in lexical order.
	// If fn returns an error, walking stops and the error is returned.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider opens directories and reads files.
type FileSystemProvider interface {
	// Open opens a directory at the specified path.
	Open(path string) (Directory, error)

	// ReadFile reads a specific file.
	ReadFile(path string) ([]byte, error)

	// ReadDir returns the entries of a directory without descending into it.
	ReadDir(path string) ([]FileInfo, error)

	// Location describes where files come from, for diagnostics.
	Location() string
}
