package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

type fsFile struct {
	fsys    fs.FS
	absPath string
	relPath string
	info    fs.FileInfo
}

func (f *fsFile) Path() string         { return f.absPath }
func (f *fsFile) RelativePath() string { return f.relPath }
func (f *fsFile) Info() FileInfo       { return f.info }

func (f *fsFile) ReadContent() ([]byte, error) {
	return fs.ReadFile(f.fsys, f.absPath)
}

type fsDirectory struct {
	fsys    fs.FS
	absPath string
}

func (d *fsDirectory) Path() string { return d.absPath }

func (d *fsDirectory) Walk(fn func(File, error) error) error {
	return fs.WalkDir(d.fsys, d.absPath, func(filePath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fn(nil, err)
		}
		info, err := entry.Info()
		if err != nil {
			return fn(nil, fmt.Errorf("failed to get file info for %s: %w", filePath, err))
		}
		relPath := filePath
		if d.absPath != "." {
			relPath = strings.TrimPrefix(strings.TrimPrefix(filePath, d.absPath), "/")
		}
		if relPath == "" {
			relPath = "."
		}
		return fn(&fsFile{fsys: d.fsys, absPath: filePath, relPath: relPath, info: info}, nil)
	})
}

// FSFileSystem exposes a sub-tree of an fs.FS, typically an embed.FS.
type FSFileSystem struct {
	fsys fs.FS
	root string // always slash-separated, "." for the FS root
	name string
}

// NewFSFileSystem wraps fsys with root as the base for relative paths.
// name is reported by Location.
func NewFSFileSystem(fsys fs.FS, root, name string) *FSFileSystem {
	root = path.Clean(strings.ReplaceAll(root, "\\", "/"))
	if root == "" || root == "/" {
		root = "."
	}
	return &FSFileSystem{fsys: fsys, root: root, name: name}
}

func (p *FSFileSystem) resolve(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if name == "" || name == "." {
		return p.root
	}
	return path.Clean(path.Join(p.root, strings.TrimPrefix(name, "/")))
}

// Open implements FileSystemProvider.Open.
func (p *FSFileSystem) Open(openPath string) (Directory, error) {
	absPath := p.resolve(openPath)
	info, err := fs.Stat(p.fsys, absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", openPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", openPath)
	}
	return &fsDirectory{fsys: p.fsys, absPath: absPath}, nil
}

// ReadFile implements FileSystemProvider.ReadFile.
func (p *FSFileSystem) ReadFile(filePath string) ([]byte, error) {
	content, err := fs.ReadFile(p.fsys, p.resolve(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return content, nil
}

// ReadDir implements FileSystemProvider.ReadDir.
func (p *FSFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	entries, err := fs.ReadDir(p.fsys, p.resolve(dirPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dirPath, err)
	}
	return entryInfos(entries)
}

// Location implements FileSystemProvider.Location.
func (p *FSFileSystem) Location() string {
	return p.name
}
