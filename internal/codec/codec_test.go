package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datalake-metadata/dlmeta/internal/testing/fixtures"
	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
)

func TestEncode_Golden(t *testing.T) {
	g := goldie.New(t)

	var pretty bytes.Buffer
	require.NoError(t, Encode(&pretty, fixtures.V001(), true))
	g.Assert(t, "v001_pretty", pretty.Bytes())

	var compact bytes.Buffer
	require.NoError(t, Encode(&compact, fixtures.V001(), false))
	g.Assert(t, "v001_compact", compact.Bytes())
}

func TestMarshal_NoTrailingNewline(t *testing.T) {
	out, err := Marshal(dlmeta.Document{"version": "0.1.0", "html": "<a&b>"})
	require.NoError(t, err)
	assert.Equal(t, `{"html":"<a&b>","version":"0.1.0"}`, string(out))
}

func TestRoundTrip_JSON(t *testing.T) {
	doc := fixtures.V001()

	data, err := Marshal(doc)
	require.NoError(t, err)
	got, err := DecodeJSON(data)
	require.NoError(t, err)

	assert.Equal(t, doc, got)
}

func TestRoundTrip_YAML(t *testing.T) {
	doc := fixtures.V010()

	var buf bytes.Buffer
	require.NoError(t, EncodeAs(&buf, doc, FormatYAML, true))
	got, err := DecodeYAML(buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, doc, got)
}

func TestDecodeYAML_NormalizesTypes(t *testing.T) {
	input := `
version: 0.1.0
count: 3
ratio: 0.5
enabled: true
missing: null
tags: [a, b]
nested:
  1: one
`
	doc, err := DecodeYAML([]byte(input))
	require.NoError(t, err)

	assert.Equal(t, "0.1.0", doc["version"])
	assert.Equal(t, float64(3), doc["count"])
	assert.Equal(t, 0.5, doc["ratio"])
	assert.Equal(t, true, doc["enabled"])
	assert.Nil(t, doc["missing"])
	assert.Equal(t, []any{"a", "b"}, doc["tags"])
	assert.Equal(t, map[string]any{"1": "one"}, doc["nested"])
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
	}{
		{"invalid json", `{"version":`, FormatJSON},
		{"json array", `[1, 2]`, FormatJSON},
		{"json null", `null`, FormatJSON},
		{"trailing data", `{"version":"0.1.0"} {}`, FormatJSON},
		{"empty yaml", ``, FormatYAML},
		{"yaml scalar", `just text`, FormatYAML},
		{"invalid yaml", "a: [1, 2", FormatYAML},
		{"unknown format", `{}`, Format("toml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input), tt.format)
			require.Error(t, err)
			assert.True(t, errors.Is(err, dlmeta.ErrUnsupportedInput), "got %v", err)
		})
	}
}

func TestDecodeJSON_TrailingWhitespace(t *testing.T) {
	doc, err := DecodeJSON([]byte("{\"version\":\"0.1.0\"}\n\n  "))
	require.NoError(t, err)
	assert.Equal(t, "0.1.0", doc["version"])
}

func TestRead(t *testing.T) {
	doc, err := Read(strings.NewReader(`{"version":"0.0.1"}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "0.0.1", doc["version"])
}

func TestFormatFor(t *testing.T) {
	tests := map[string]Format{
		"meta.json":     FormatJSON,
		"meta.yaml":     FormatYAML,
		"dir/META.YML":  FormatYAML,
		"meta":          FormatJSON,
		"-":             FormatJSON,
		"meta.yaml.bak": FormatJSON,
	}
	for path, want := range tests {
		assert.Equal(t, want, FormatFor(path), path)
	}
}

func TestClone_Deep(t *testing.T) {
	doc := fixtures.V001()
	clone := Clone(doc)
	require.Equal(t, doc, clone)

	clone["Dataset"].(map[string]any)["CKAN_dataset_metadata"].(map[string]any)["dataset_id"] = "changed"
	clone["CKAN_Resources"].([]any)[0].(map[string]any)["path"] = "changed"
	clone["version"] = "9.9.9"

	assert.Equal(t, fixtures.V001(), doc)
}

func TestClone_Nil(t *testing.T) {
	assert.Nil(t, Clone(nil))
}
