package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentBuilder_FreshCopies(t *testing.T) {
	a := V001()
	b := V001()

	a["Dataset"].(map[string]any)["CKAN_dataset_metadata"].(map[string]any)["dataset_id"] = "changed"

	ckan := b["Dataset"].(map[string]any)["CKAN_dataset_metadata"].(map[string]any)
	assert.Equal(t, "example_dataset_id", ckan["dataset_id"])
}

func TestDocumentBuilder_Edits(t *testing.T) {
	doc := NewDocument().
		WithVersion("0.0.1").
		Without("CKAN_Resources").
		WithCKAN("dataset_id", "").
		Build()

	assert.Equal(t, "0.0.1", doc["version"])
	assert.NotContains(t, doc, "CKAN_Resources")
	ckan := doc["Dataset"].(map[string]any)["CKAN_dataset_metadata"].(map[string]any)
	assert.Equal(t, "", ckan["dataset_id"])
}

func TestV010_Layout(t *testing.T) {
	doc := V010()

	assert.Equal(t, "0.1.0", doc["version"])
	assert.NotContains(t, doc, "Sample_Sheet")
	require.Contains(t, doc, "Sample_Sheets")
	assert.Len(t, doc["Sample_Sheets"], 1)
}

func TestSchemaTree(t *testing.T) {
	tree := SchemaTree("0.0.1", "0.2.0")

	content, err := tree.ReadFile("metadata-v0.2.0.schema.json")
	require.NoError(t, err)
	assert.Contains(t, string(content), `"required": ["version"]`)

	infos, err := tree.ReadDir(".")
	require.NoError(t, err)
	assert.Len(t, infos, 2)
}
