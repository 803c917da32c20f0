// Package metadata validates datalake metadata documents against the JSON
// Schema of their declared version and migrates them forward.
//
// The package-level functions use the schemas and migrations bundled with
// the library:
//
//	doc, err := metadata.Loads(data, ">=0.1.0")
//	if err != nil {
//	    return err
//	}
//	out, err := metadata.Dumps(doc)
//
// A Client substitutes the schema source, the migration registry or the
// logger. Documents are mutated in place; a failed Migrate leaves the
// changes made so far, so callers wanting all-or-nothing behaviour migrate
// a Clone and swap on success.
package metadata
