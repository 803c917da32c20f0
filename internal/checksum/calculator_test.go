package checksum

import (
	"testing"
)

func TestCalculateRaw_Deterministic(t *testing.T) {
	c := New()
	a := c.CalculateRaw([]byte(`{"type":"object"}`))
	b := c.CalculateRaw([]byte(`{"type":"object"}`))
	if a != b {
		t.Errorf("expected identical checksums, got %s and %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex characters, got %d", len(a))
	}
}

func TestCalculateRaw_SensitiveToWhitespace(t *testing.T) {
	c := New()
	if c.CalculateRaw([]byte(`{"a":1}`)) == c.CalculateRaw([]byte(`{ "a": 1 }`)) {
		t.Error("raw checksum should change with formatting")
	}
}

func TestCalculateNormalized_IgnoresFormattingAndKeyOrder(t *testing.T) {
	c := New()
	compact := []byte(`{"required":["version"],"type":"object"}`)
	pretty := []byte("{\n  \"type\": \"object\",\n  \"required\": [\n    \"version\"\n  ]\n}\n")

	if c.CalculateNormalized(compact) != c.CalculateNormalized(pretty) {
		t.Error("normalized checksum should ignore whitespace and key order")
	}
}

func TestCalculateNormalized_DetectsContentChange(t *testing.T) {
	c := New()
	if c.CalculateNormalized([]byte(`{"type":"object"}`)) == c.CalculateNormalized([]byte(`{"type":"array"}`)) {
		t.Error("normalized checksum should change with content")
	}
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"sorts keys", `{"b":1,"a":{"d":2,"c":3}}`, `{"a":{"c":3,"d":2},"b":1}`},
		{"keeps numbers verbatim", `{"n": 1.50}`, `{"n":1.50}`},
		{"invalid json is trimmed", "  not json \n", "not json"},
		{"trailing data is not json", `{} {}`, `{} {}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(Canonicalize([]byte(tt.input))); got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
