// Package engine answers eligibility and pricing questions against an
// immutable catalog. Every method is a pure function of its input and the
// catalog, so an Engine is safe for concurrent use.
package engine

import "plan-engine/internal/catalog"

type Engine struct {
	catalog *catalog.Catalog
}

// New captures c. The catalog must not be modified afterwards.
func New(c *catalog.Catalog) *Engine {
	return &Engine{catalog: c}
}

func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}
