package dlmeta

// Document is a metadata document: a JSON object decoded into Go values
// (map[string]any, []any, string, float64, bool, nil).
//
// Documents are mutated in place. Validation and migration receive the
// caller's map and modify it directly; a caller that needs the pre-call value
// must copy it first (see metadata.Clone).
type Document map[string]any

// RawVersion returns the value of the version field and whether it is a string.
func (d Document) RawVersion() (string, bool) {
	v, ok := d[VersionField]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Migration transforms a document in place from one schema version to a newer one.
//
// A migration must write a version strictly greater than the one it read, at
// least at patch precision, and should do so through the version stamper so
// the library's provenance is recorded. The document is validated by the
// engine after the migration returns; the migration itself does not validate.
//
// Returning an error aborts the migration run. Mutations made before the
// error are kept.
type Migration func(doc Document) error
