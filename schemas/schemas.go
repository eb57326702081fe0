// Package schemas embeds the JSON Schema documents that gate every collection file read from disk.
package schemas

import "embed"

// Schema file names, one per collection document kind.
const (
	Opportunities = "opportunities.schema.json"
	Products      = "products.schema.json"
	Applications  = "applications.schema.json"
)

// All lists every embedded schema file.
var All = []string{Opportunities, Products, Applications}

//go:embed *.schema.json
var files embed.FS

// Read returns the raw content of an embedded schema file.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}
