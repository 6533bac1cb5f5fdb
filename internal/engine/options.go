package engine

import (
	"slices"

	"plan-engine/internal/catalog"
	"plan-engine/internal/model"
)

// AllowedOptions narrows every dimension sel leaves unset to the values still
// jointly satisfiable. Constraints flow in a fixed order: branch and fixed
// table narrow tables, which narrow contract types; contract types narrow
// tables and categories; branch narrows products, which narrow
// reimbursement modes. A fixed dimension starts from its own value, so fixing
// more fields never widens a result.
func (e *Engine) AllowedOptions(sel model.Selection) model.AllowedOptions {
	c := e.catalog

	var branch *catalog.Branch
	if sel.Branch != nil {
		b, ok := c.Branch(*sel.Branch)
		if !ok {
			return emptyOptions(sel)
		}
		branch = &b
	}

	baseTables := filter(c.PriceTables(), func(t int) bool {
		if sel.PriceTable != nil && t != *sel.PriceTable {
			return false
		}
		return branch == nil || branch.PermitsTable(t)
	})

	contracts := filter(c.ContractTypes(), func(ct catalog.ContractType) bool {
		switch {
		case sel.ContractType != nil && ct.ID != *sel.ContractType:
			return false
		case branch != nil && !branch.PermitsContractType(ct.ID):
			return false
		case sel.ContractCategory != nil && ct.Category != *sel.ContractCategory:
			return false
		case sel.Lives != nil && !ct.AllowsLives(*sel.Lives):
			return false
		}
		return slices.ContainsFunc(baseTables, ct.AllowsTable)
	})

	tables := filter(baseTables, func(t int) bool {
		return slices.ContainsFunc(contracts, func(ct catalog.ContractType) bool { return ct.AllowsTable(t) })
	})

	categories := filter(c.ContractCategories(), func(cat catalog.ContractCategory) bool {
		return slices.ContainsFunc(contracts, func(ct catalog.ContractType) bool { return ct.Category == cat.ID })
	})

	products := filter(c.Products(), func(p catalog.Product) bool {
		switch {
		case sel.Product != nil && p.ID != *sel.Product:
			return false
		case branch != nil && !branch.PermitsProduct(p.ID):
			return false
		case sel.ReimbursementMode != nil && !p.Supports(*sel.ReimbursementMode):
			return false
		}
		return true
	})

	modes := filter(c.ReimbursementModes(), func(m string) bool {
		if sel.ReimbursementMode != nil && m != *sel.ReimbursementMode {
			return false
		}
		return slices.ContainsFunc(products, func(p catalog.Product) bool { return p.Supports(m) })
	})

	var out model.AllowedOptions
	if sel.PriceTable == nil {
		out.PriceTables = tables
	}
	if sel.ContractType == nil {
		out.ContractTypes = ids(contracts, func(ct catalog.ContractType) string { return ct.ID })
	}
	if sel.ContractCategory == nil {
		out.ContractCategories = ids(categories, func(cat catalog.ContractCategory) string { return cat.ID })
	}
	if sel.Product == nil {
		out.Products = ids(products, func(p catalog.Product) string { return p.ID })
	}
	if sel.ReimbursementMode == nil {
		out.ReimbursementModes = modes
	}
	return out
}

// emptyOptions is the answer for an unknown branch: nothing is selectable.
func emptyOptions(sel model.Selection) model.AllowedOptions {
	var out model.AllowedOptions
	if sel.PriceTable == nil {
		out.PriceTables = []int{}
	}
	if sel.ContractType == nil {
		out.ContractTypes = []string{}
	}
	if sel.ContractCategory == nil {
		out.ContractCategories = []string{}
	}
	if sel.Product == nil {
		out.Products = []string{}
	}
	if sel.ReimbursementMode == nil {
		out.ReimbursementModes = []string{}
	}
	return out
}

// filter keeps the order of in and never returns nil.
func filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func ids[T any](in []T, id func(T) string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = id(v)
	}
	return out
}
