package catalog

import (
	_ "embed"
	"slices"
)

//go:embed default_catalog.json
var defaultDocument []byte

// Default builds the bundled catalog.
func Default() (*Catalog, error) {
	return Parse(defaultDocument, FormatJSON)
}

// DefaultDocument returns a copy of the bundled catalog's JSON.
func DefaultDocument() []byte {
	return slices.Clone(defaultDocument)
}
