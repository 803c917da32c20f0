// Package schemas embeds the metadata JSON Schemas shipped with the library.
//
// One file per schema version, named metadata-v<major.minor.patch>.schema.json.
package schemas

import "embed"

// FS holds the bundled schema files at its root.
//
//go:embed *.schema.json
var FS embed.FS
