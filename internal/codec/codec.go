package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
)

// Format identifies a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file name extension. Anything that is
// not .yaml or .yml is treated as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses data in the given format.
func Decode(data []byte, format Format) (dlmeta.Document, error) {
	switch format {
	case FormatYAML:
		return DecodeYAML(data)
	case FormatJSON, "":
		return DecodeJSON(data)
	default:
		return nil, fmt.Errorf("%w: format %q", dlmeta.ErrUnsupportedInput, format)
	}
}

// DecodeJSON parses a single JSON object.
func DecodeJSON(data []byte) (dlmeta.Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", dlmeta.ErrUnsupportedInput, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after JSON document", dlmeta.ErrUnsupportedInput)
	}
	return asDocument(v)
}

// DecodeYAML parses a single YAML mapping.
func DecodeYAML(data []byte) (dlmeta.Document, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: invalid YAML: %v", dlmeta.ErrUnsupportedInput, err)
	}
	n, err := normalize(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dlmeta.ErrUnsupportedInput, err)
	}
	return asDocument(n)
}

// Read reads r to the end and decodes it.
func Read(r io.Reader, format Format) (dlmeta.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return Decode(data, format)
}

func asDocument(v any) (dlmeta.Document, error) {
	switch m := v.(type) {
	case map[string]any:
		return dlmeta.Document(m), nil
	case nil:
		return nil, fmt.Errorf("%w: empty document", dlmeta.ErrUnsupportedInput)
	default:
		return nil, fmt.Errorf("%w: document must be an object, got %T", dlmeta.ErrUnsupportedInput, v)
	}
}

// Marshal returns the compact JSON encoding of doc. Keys are sorted.
func Marshal(doc dlmeta.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc, false); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Encode writes doc as JSON followed by a newline, indented when pretty is set.
func Encode(w io.Writer, doc dlmeta.Document, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(map[string]any(doc)); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}

// EncodeAs writes doc in the given format.
func EncodeAs(w io.Writer, doc dlmeta.Document, format Format, pretty bool) error {
	if format != FormatYAML {
		return Encode(w, doc, pretty)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any(doc)); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return enc.Close()
}
