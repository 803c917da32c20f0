package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/datalake-metadata/dlmeta/internal/checksum"
	"github.com/datalake-metadata/dlmeta/internal/codec"
	"github.com/datalake-metadata/dlmeta/internal/files/scanner"
	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
)

const stdinArg = "-"

// document is one input to a command.
type document struct {
	name   string
	format codec.Format
	data   []byte
}

func (d document) decode() (dlmeta.Document, error) {
	return codec.Decode(d.data, d.format)
}

// readDocuments resolves command arguments into documents. "-" reads stdin
// in stdinFormat, a directory expands to the documents below it.
func readDocuments(cmd *cobra.Command, args []string, stdinFormat codec.Format) ([]document, error) {
	var docs []document
	for _, arg := range args {
		if arg == stdinArg {
			doc, err := readStdin(cmd, stdinFormat)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", dlmeta.ErrUnsupportedInput, err)
		}
		if !info.IsDir() {
			doc, err := readFile(arg)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
			continue
		}

		files, err := scanner.NewScanner(checksum.New()).ScanDirectory(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", arg, err)
		}
		for _, f := range files {
			docs = append(docs, document{
				name:   filepath.ToSlash(filepath.Join(arg, f.Path)),
				format: f.Format,
				data:   f.Content,
			})
		}
	}
	return docs, nil
}

func readFile(path string) (document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return document{}, fmt.Errorf("%w: %v", dlmeta.ErrUnsupportedInput, err)
	}
	return document{name: path, format: codec.FormatFor(path), data: data}, nil
}

func readStdin(cmd *cobra.Command, format codec.Format) (document, error) {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return document{}, fmt.Errorf("%w: stdin: %v", dlmeta.ErrUnsupportedInput, err)
	}
	return document{name: "<stdin>", format: format, data: data}, nil
}

// parseFormat validates a --format flag value.
func parseFormat(value string) (codec.Format, error) {
	switch f := codec.Format(value); f {
	case codec.FormatJSON, codec.FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("invalid argument %q for --format: must be json or yaml", value)
	}
}
