// Package fixtures builds metadata documents and schema trees for tests.
package fixtures

import (
	"fmt"

	"github.com/datalake-metadata/dlmeta/internal/files/filesystem"
	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
)

// DraftMetaSchemaID is the "$schema" value producers put in documents.
const DraftMetaSchemaID = "https://json-schema.org/draft/2020-12/schema"

// DocumentBuilder provides a fluent API for building metadata documents.
// Every Build call returns a fresh document, so tests can mutate the result
// freely.
//
// Example usage:
//
//	doc := fixtures.NewDocument().
//	    WithVersion("0.0.1").
//	    Without("CKAN_Resources").
//	    Build()
type DocumentBuilder struct {
	edits []func(dlmeta.Document)
}

// NewDocument creates a builder for a valid 0.0.1-alpha document.
func NewDocument() *DocumentBuilder {
	return &DocumentBuilder{}
}

// WithVersion overrides the version field.
func (b *DocumentBuilder) WithVersion(v string) *DocumentBuilder {
	return b.Set(dlmeta.VersionField, v)
}

// Set assigns a top-level field.
func (b *DocumentBuilder) Set(key string, value any) *DocumentBuilder {
	b.edits = append(b.edits, func(doc dlmeta.Document) { doc[key] = value })
	return b
}

// Without removes a top-level field.
func (b *DocumentBuilder) Without(key string) *DocumentBuilder {
	b.edits = append(b.edits, func(doc dlmeta.Document) { delete(doc, key) })
	return b
}

// WithCKAN assigns a field of Dataset.CKAN_dataset_metadata.
func (b *DocumentBuilder) WithCKAN(key string, value any) *DocumentBuilder {
	b.edits = append(b.edits, func(doc dlmeta.Document) {
		ckan := doc["Dataset"].(map[string]any)["CKAN_dataset_metadata"].(map[string]any)
		ckan[key] = value
	})
	return b
}

// Edit applies an arbitrary change after the other edits.
func (b *DocumentBuilder) Edit(fn func(dlmeta.Document)) *DocumentBuilder {
	b.edits = append(b.edits, fn)
	return b
}

// Build returns a new document with all edits applied.
func (b *DocumentBuilder) Build() dlmeta.Document {
	doc := baseDocument()
	for _, edit := range b.edits {
		edit(doc)
	}
	return doc
}

// V001 returns a valid document in the 0.0.1 layout.
func V001() dlmeta.Document {
	return NewDocument().Build()
}

// V010 returns a valid document in the 0.1.0 layout.
func V010() dlmeta.Document {
	return NewDocument().
		WithVersion("0.1.0").
		Without("Sample_Sheet").
		Set("Sample_Sheets", []any{
			map[string]any{"path": "nanopore_sample_submission_sample_sheet_path"},
		}).
		Build()
}

func baseDocument() dlmeta.Document {
	return dlmeta.Document{
		"$schema": DraftMetaSchemaID,
		"version": "0.0.1-alpha",
		"Dataset": map[string]any{
			"CKAN_dataset_metadata": map[string]any{
				"project_id": "example_project_id",
				"dataset_id": "example_dataset_id",
				"data_type":  "example_data_type",
				"instrument": "example_instrument",
			},
			"Benchling_Experiment_metadata": map[string]any{
				"experiment_id":   "example_experiment_id",
				"experiment_type": "example_experiment_type",
			},
			"Benchling_Request_metadata": map[string]any{
				"request_id": "example_request_id",
				"schema":     "example_schema",
			},
		},
		"Sample_Sheet": map[string]any{"path": "nanopore_sample_submission_sample_sheet_path"},
		"CKAN_Resources": []any{
			map[string]any{"resource_name": "example_resource_name_1", "path": "example_path_1"},
			map[string]any{"resource_name": "example_resource_name_2", "path": "example_path_2"},
		},
	}
}

// MinimalSchema returns a schema that only requires a string version field
// and, when required is not empty, the named top-level fields.
func MinimalSchema(required ...string) string {
	fields := `"version"`
	for _, r := range required {
		fields += fmt.Sprintf(", %q", r)
	}
	return fmt.Sprintf(`{
  "$schema": "http://json-schema.org/draft-04/schema#",
  "type": "object",
  "required": [%s],
  "properties": {
    "version": {"type": "string"}
  }
}`, fields)
}

// SchemaTree returns an in-memory filesystem holding a MinimalSchema file for
// each version, named the way schema resolvers expect.
func SchemaTree(versions ...string) *filesystem.MemoryFileSystem {
	mfs := filesystem.NewMemoryFileSystem()
	for _, v := range versions {
		mfs.AddFile(fmt.Sprintf(dlmeta.SchemaFileTemplate, v), MinimalSchema())
	}
	return mfs
}
