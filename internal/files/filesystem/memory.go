package filesystem

import (
	"path"
	"strings"
	"testing/fstest"
	"time"
)

// MemoryFileSystem is an in-memory provider for tests.
// Paths are slash-separated and relative to the in-memory root; a leading
// slash is ignored.
type MemoryFileSystem struct {
	*FSFileSystem
	files fstest.MapFS
}

// NewMemoryFileSystem creates an empty in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	files := fstest.MapFS{}
	return &MemoryFileSystem{
		FSFileSystem: NewFSFileSystem(files, ".", "memory"),
		files:        files,
	}
}

// AddFile adds or replaces a file.
func (m *MemoryFileSystem) AddFile(filePath, content string) {
	m.AddFileWithTime(filePath, content, time.Now())
}

// AddFileWithTime adds or replaces a file with a specific modification time.
func (m *MemoryFileSystem) AddFileWithTime(filePath, content string, modTime time.Time) {
	key := path.Clean(strings.TrimPrefix(strings.ReplaceAll(filePath, "\\", "/"), "/"))
	m.files[key] = &fstest.MapFile{
		Data:    []byte(content),
		Mode:    0644,
		ModTime: modTime,
	}
}
