package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/datalake-metadata/dlmeta/internal/checksum"
	"github.com/datalake-metadata/dlmeta/internal/codec"
	"github.com/datalake-metadata/dlmeta/internal/files/filesystem"
)

// File is a discovered metadata document.
type File struct {
	Path        string // slash-separated, relative to the scanned directory, "./" prefixed
	Format      codec.Format
	Content     []byte
	SizeBytes   int64
	Checksum    string // normalized checksum
	ChecksumRaw string
	ModifiedAt  time.Time
}

// Scanner discovers metadata documents.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided calculator and fsProvider are also thread-safe.
type Scanner struct {
	calculator checksum.Calculator
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a scanner over the OS filesystem.
// Panics if calculator is nil.
func NewScanner(calculator checksum.Calculator) *Scanner {
	return NewScannerWithFS(calculator, filesystem.NewOSFileSystem(""))
}

// NewScannerWithFS creates a scanner with a custom filesystem provider.
// Panics if calculator or fsProvider is nil.
func NewScannerWithFS(calculator checksum.Calculator, fsProvider filesystem.FileSystemProvider) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{
		calculator: calculator,
		fsProvider: fsProvider,
	}
}

// ScanDirectory recursively scans sourcePath and returns the documents found.
func (s *Scanner) ScanDirectory(sourcePath string) ([]File, error) {
	dir, err := s.fsProvider.Open(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory: %w", err)
	}

	var files []File
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}

		relPath := file.RelativePath()
		if relPath != "." && isHidden(relPath) {
			if file.Info().IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if file.Info().IsDir() || !IsDocument(file.Info().Name()) {
			return nil
		}

		f, err := s.processFile(file)
		if err != nil {
			return fmt.Errorf("failed to process file %s: %w", relPath, err)
		}
		files = append(files, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (s *Scanner) processFile(file filesystem.File) (File, error) {
	content, err := file.ReadContent()
	if err != nil {
		return File{}, fmt.Errorf("failed to read file: %w", err)
	}

	unixPath := filepath.ToSlash(file.RelativePath())
	if !strings.HasPrefix(unixPath, "./") {
		unixPath = "./" + unixPath
	}

	info := file.Info()
	return File{
		Path:        unixPath,
		Format:      codec.FormatFor(info.Name()),
		Content:     content,
		SizeBytes:   info.Size(),
		Checksum:    s.calculator.CalculateNormalized(content),
		ChecksumRaw: s.calculator.CalculateRaw(content),
		ModifiedAt:  info.ModTime(),
	}, nil
}

// IsDocument reports whether a file name looks like a metadata document.
func IsDocument(name string) bool {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".schema.json") {
		return false
	}
	switch filepath.Ext(lower) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func isHidden(relPath string) bool {
	return strings.HasPrefix(filepath.Base(relPath), ".")
}
