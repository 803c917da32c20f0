package schema

import (
	"encoding/json"
	"fmt"

	"github.com/go-openapi/spec"
)

// Compile parses a JSON Schema document and expands its local references.
func Compile(raw []byte) (*spec.Schema, error) {
	var s spec.Schema
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	if err := spec.ExpandSchema(&s, nil, nil); err != nil {
		return nil, fmt.Errorf("expand schema references: %w", err)
	}
	return &s, nil
}
