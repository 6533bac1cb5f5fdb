// Package catalog holds the immutable reference data the engine reasons over:
// branches, contract types, price tables, products, age brackets and the
// layered price table. A Catalog is built once and never mutated.
package catalog

import (
	"slices"

	"github.com/shopspring/decimal"
)

type Catalog struct {
	version            string
	priceTables        []int
	ageBrackets        []AgeBracket
	coparticipation    []CoparticipationMode
	reimbursementModes []string
	categories         []ContractCategory
	contractTypes      []ContractType
	products           []Product
	branches           []Branch
	prices             map[PriceKey]decimal.Decimal
	overrides          []PriceOverride

	tableIndex    map[int]int
	ageIndex      map[string]int
	copartIndex   map[string]int
	reimbIndex    map[string]int
	categoryIndex map[string]int
	contractIndex map[string]int
	productIndex  map[string]int
	branchIndex   map[string]int
}

func (c *Catalog) Version() string { return c.version }

func (c *Catalog) PriceTables() []int { return slices.Clone(c.priceTables) }

func (c *Catalog) AgeBrackets() []AgeBracket { return slices.Clone(c.ageBrackets) }

func (c *Catalog) CoparticipationModes() []CoparticipationMode {
	return slices.Clone(c.coparticipation)
}

func (c *Catalog) ReimbursementModes() []string { return slices.Clone(c.reimbursementModes) }

func (c *Catalog) ContractCategories() []ContractCategory { return slices.Clone(c.categories) }

func (c *Catalog) ContractTypes() []ContractType { return slices.Clone(c.contractTypes) }

func (c *Catalog) Products() []Product { return slices.Clone(c.products) }

func (c *Catalog) Branches() []Branch { return slices.Clone(c.branches) }

func (c *Catalog) Overrides() []PriceOverride { return slices.Clone(c.overrides) }

func (c *Catalog) Branch(id string) (Branch, bool) {
	i, ok := c.branchIndex[id]
	if !ok {
		return Branch{}, false
	}
	return c.branches[i], true
}

func (c *Catalog) ContractType(id string) (ContractType, bool) {
	i, ok := c.contractIndex[id]
	if !ok {
		return ContractType{}, false
	}
	return c.contractTypes[i], true
}

func (c *Catalog) Product(id string) (Product, bool) {
	i, ok := c.productIndex[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

func (c *Catalog) AgeBracket(id string) (AgeBracket, bool) {
	i, ok := c.ageIndex[id]
	if !ok {
		return AgeBracket{}, false
	}
	return c.ageBrackets[i], true
}

func (c *Catalog) HasPriceTable(table int) bool {
	_, ok := c.tableIndex[table]
	return ok
}

func (c *Catalog) HasCoparticipation(id string) bool {
	_, ok := c.copartIndex[id]
	return ok
}

func (c *Catalog) HasReimbursementMode(mode string) bool {
	_, ok := c.reimbIndex[mode]
	return ok
}

func (c *Catalog) HasContractCategory(id string) bool {
	_, ok := c.categoryIndex[id]
	return ok
}

// BasePrice returns the base entry for the exact tuple.
func (c *Catalog) BasePrice(k PriceKey) (decimal.Decimal, bool) {
	p, ok := c.prices[k]
	return p, ok
}

// Override returns the most specific override matching k. Ties go to the
// override declared first.
func (c *Catalog) Override(k PriceKey) (PriceOverride, bool) {
	best := -1
	for i, o := range c.overrides {
		if !o.Matches(k) {
			continue
		}
		if best < 0 || o.Specificity() > c.overrides[best].Specificity() {
			best = i
		}
	}
	if best < 0 {
		return PriceOverride{}, false
	}
	return c.overrides[best], true
}

// PriceCount is the number of base entries.
func (c *Catalog) PriceCount() int { return len(c.prices) }
