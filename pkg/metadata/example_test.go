package metadata_test

import (
	"fmt"

	"github.com/datalake-metadata/dlmeta/pkg/metadata"
)

func ExampleLoadsString() {
	doc, err := metadata.LoadsString(`{"version": "9.0.0"}`, ">=0.1.0")
	fmt.Println(doc == nil, err)
	// Output: true no schema for version 9.0.0 (looked up metadata-v9.0.0.schema.json)
}
