package codec

import "github.com/datalake-metadata/dlmeta/pkg/dlmeta"

// Clone returns a deep copy of doc. Nested maps and slices are copied;
// scalar values are shared.
func Clone(doc dlmeta.Document) dlmeta.Document {
	if doc == nil {
		return nil
	}
	return dlmeta.Document(cloneValue(map[string]any(doc)).(map[string]any))
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case dlmeta.Document:
		return cloneValue(map[string]any(t))
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	default:
		return v
	}
}
