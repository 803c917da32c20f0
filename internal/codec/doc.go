// Package codec converts metadata documents to and from their wire formats.
//
// JSON is the canonical format. YAML input is accepted and normalized to the
// same value types encoding/json produces (map[string]any, []any, float64,
// string, bool, nil), so a document behaves identically whichever format it
// was read from. Encoding never validates.
package codec
