package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// IntegrityError lists every problem found while building a catalog. A
// catalog that fails integrity checks must not serve queries.
type IntegrityError struct {
	Problems []string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("catalog integrity: %d problem(s): %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

type builder struct {
	c        *Catalog
	problems []string
}

func (b *builder) problem(format string, args ...any) {
	b.problems = append(b.problems, fmt.Sprintf(format, args...))
}

// Build checks doc and indexes it into an immutable Catalog. The document is
// copied; later changes to doc do not reach the catalog.
func Build(doc *Document) (*Catalog, error) {
	if doc == nil {
		return nil, &IntegrityError{Problems: []string{"no catalog document"}}
	}
	b := &builder{c: &Catalog{version: doc.Version}}

	b.indexTables(doc.PriceTables)
	b.indexAgeBrackets(doc.AgeBrackets)
	b.c.coparticipation = slices.Clone(doc.CoparticipationModes)
	b.c.copartIndex = indexIDs(b, "coparticipation mode", b.c.coparticipation, func(m CoparticipationMode) string { return m.ID })
	b.c.reimbursementModes = slices.Clone(doc.ReimbursementModes)
	b.c.reimbIndex = indexIDs(b, "reimbursement mode", b.c.reimbursementModes, func(m string) string { return m })
	b.c.categories = slices.Clone(doc.ContractCategories)
	b.c.categoryIndex = indexIDs(b, "contract category", b.c.categories, func(m ContractCategory) string { return m.ID })

	b.indexContractTypes(doc.ContractTypes)
	b.indexProducts(doc.Products)
	b.indexBranches(doc.Branches)
	b.indexPrices(doc.Prices)
	b.indexOverrides(doc.Overrides)

	if len(b.problems) > 0 {
		return nil, &IntegrityError{Problems: b.problems}
	}
	return b.c, nil
}

func indexIDs[T any](b *builder, kind string, items []T, id func(T) string) map[string]int {
	if len(items) == 0 {
		b.problem("no %ss defined", kind)
	}
	idx := make(map[string]int, len(items))
	for i, it := range items {
		key := id(it)
		if key == "" {
			b.problem("%s #%d has an empty id", kind, i)
			continue
		}
		if _, dup := idx[key]; dup {
			b.problem("duplicate %s %q", kind, key)
			continue
		}
		idx[key] = i
	}
	return idx
}

func (b *builder) indexTables(tables []int) {
	if len(tables) == 0 {
		b.problem("no price tables defined")
	}
	b.c.priceTables = slices.Clone(tables)
	b.c.tableIndex = make(map[int]int, len(tables))
	for i, t := range tables {
		if _, dup := b.c.tableIndex[t]; dup {
			b.problem("duplicate price table %d", t)
			continue
		}
		b.c.tableIndex[t] = i
	}
}

func (b *builder) indexAgeBrackets(brackets []AgeBracket) {
	b.c.ageBrackets = slices.Clone(brackets)
	b.c.ageIndex = indexIDs(b, "age bracket", b.c.ageBrackets, func(a AgeBracket) string { return a.ID })
	for i, a := range b.c.ageBrackets {
		if a.MinAge < 0 {
			b.problem("age bracket %q has a negative lower bound", a.ID)
		}
		if a.MaxAge == nil {
			if i != len(b.c.ageBrackets)-1 {
				b.problem("age bracket %q is open-ended but not last", a.ID)
			}
		} else if *a.MaxAge < a.MinAge {
			b.problem("age bracket %q has max_age below min_age", a.ID)
		}
		if i > 0 {
			prev := b.c.ageBrackets[i-1]
			if prev.MaxAge != nil && a.MinAge <= *prev.MaxAge {
				b.problem("age bracket %q overlaps or precedes %q", a.ID, prev.ID)
			}
		}
	}
}

func (b *builder) indexContractTypes(types []ContractType) {
	b.c.contractTypes = make([]ContractType, len(types))
	for i, ct := range types {
		ct.PriceTables = slices.Clone(ct.PriceTables)
		b.c.contractTypes[i] = ct
	}
	b.c.contractIndex = indexIDs(b, "contract type", b.c.contractTypes, func(c ContractType) string { return c.ID })
	for _, ct := range b.c.contractTypes {
		if ct.MinLives < 0 || ct.MaxLives < 0 {
			b.problem("contract type %q has negative lives bounds", ct.ID)
		}
		if ct.MinLives > ct.MaxLives {
			b.problem("contract type %q has min_lives %d above max_lives %d", ct.ID, ct.MinLives, ct.MaxLives)
		}
		if _, ok := b.c.categoryIndex[ct.Category]; !ok {
			b.problem("contract type %q references unknown category %q", ct.ID, ct.Category)
		}
		if len(ct.PriceTables) == 0 {
			b.problem("contract type %q declares no price tables", ct.ID)
		}
		for _, t := range ct.PriceTables {
			if _, ok := b.c.tableIndex[t]; !ok {
				b.problem("contract type %q references unknown price table %d", ct.ID, t)
			}
		}
	}
}

func (b *builder) indexProducts(products []Product) {
	b.c.products = make([]Product, len(products))
	for i, p := range products {
		p.ReimbursementModes = slices.Clone(p.ReimbursementModes)
		b.c.products[i] = p
	}
	b.c.productIndex = indexIDs(b, "product", b.c.products, func(p Product) string { return p.ID })
	for _, p := range b.c.products {
		if len(p.ReimbursementModes) == 0 {
			b.problem("product %q supports no reimbursement mode", p.ID)
		}
		for _, m := range p.ReimbursementModes {
			if _, ok := b.c.reimbIndex[m]; !ok {
				b.problem("product %q references unknown reimbursement mode %q", p.ID, m)
			}
		}
	}
}

func (b *builder) indexBranches(branches []Branch) {
	b.c.branches = make([]Branch, len(branches))
	for i, br := range branches {
		br.PriceTables = slices.Clone(br.PriceTables)
		br.ContractTypes = slices.Clone(br.ContractTypes)
		br.Products = slices.Clone(br.Products)
		b.c.branches[i] = br
	}
	b.c.branchIndex = indexIDs(b, "branch", b.c.branches, func(br Branch) string { return br.ID })
	for _, br := range b.c.branches {
		if len(br.PriceTables) == 0 {
			b.problem("branch %q permits no price table", br.ID)
		}
		if len(br.ContractTypes) == 0 {
			b.problem("branch %q permits no contract type", br.ID)
		}
		if len(br.Products) == 0 {
			b.problem("branch %q permits no product", br.ID)
		}
		for _, t := range br.PriceTables {
			if _, ok := b.c.tableIndex[t]; !ok {
				b.problem("branch %q references unknown price table %d", br.ID, t)
			}
		}
		for _, id := range br.ContractTypes {
			i, ok := b.c.contractIndex[id]
			if !ok {
				b.problem("branch %q references unknown contract type %q", br.ID, id)
				continue
			}
			if !slices.ContainsFunc(b.c.contractTypes[i].PriceTables, br.PermitsTable) {
				b.problem("branch %q permits contract type %q but none of its price tables", br.ID, id)
			}
		}
		for _, id := range br.Products {
			if _, ok := b.c.productIndex[id]; !ok {
				b.problem("branch %q references unknown product %q", br.ID, id)
			}
		}
	}
}

func (b *builder) indexPrices(rows []PriceRow) {
	b.c.prices = make(map[PriceKey]decimal.Decimal, len(rows)*len(b.c.ageBrackets))
	for i, r := range rows {
		where := fmt.Sprintf("price row #%d (%s/%s/%s/%s)", i, r.Branch, r.ContractType, r.Coparticipation, r.Product)
		if r.Branch == "" || r.ContractType == "" || r.Coparticipation == "" || r.Product == "" {
			b.problem("%s leaves part of its key empty", where)
			continue
		}
		if !b.knownTuple(where, r.Branch, r.ContractType, r.Coparticipation, r.Product, "") {
			continue
		}
		if len(r.ByAge) != len(b.c.ageBrackets) {
			b.problem("%s has %d prices for %d age brackets", where, len(r.ByAge), len(b.c.ageBrackets))
			continue
		}
		for j, price := range r.ByAge {
			k := PriceKey{
				Branch:          r.Branch,
				ContractType:    r.ContractType,
				Coparticipation: r.Coparticipation,
				Product:         r.Product,
				AgeBracket:      b.c.ageBrackets[j].ID,
			}
			if price.IsNegative() {
				b.problem("%s has a negative price for %s", where, k.AgeBracket)
				continue
			}
			if _, dup := b.c.prices[k]; dup {
				b.problem("%s duplicates the price for %s", where, k.AgeBracket)
				continue
			}
			b.c.prices[k] = price
		}
	}
}

func (b *builder) indexOverrides(overrides []PriceOverride) {
	b.c.overrides = slices.Clone(overrides)
	ids := make(map[string]bool, len(overrides))
	patterns := make(map[[5]string]string, len(overrides))
	for i, o := range b.c.overrides {
		where := fmt.Sprintf("override %q", o.ID)
		if o.ID == "" {
			where = fmt.Sprintf("override #%d", i)
			b.problem("%s has an empty id", where)
		} else if ids[o.ID] {
			b.problem("duplicate override %q", o.ID)
		}
		ids[o.ID] = true
		if o.Specificity() == 0 {
			b.problem("%s matches every tuple", where)
		}
		if o.Price.IsNegative() {
			b.problem("%s has a negative price", where)
		}
		b.knownTuple(where, o.Branch, o.ContractType, o.Coparticipation, o.Product, o.AgeBracket)
		if prev, dup := patterns[o.fields()]; dup {
			b.problem("%s repeats the key of override %q", where, prev)
			continue
		}
		patterns[o.fields()] = o.ID
	}
}

// knownTuple reports dangling references. Empty fields are not checked.
func (b *builder) knownTuple(where, branch, contract, copart, product, age string) bool {
	ok := true
	check := func(kind, id string, idx map[string]int) {
		if id == "" {
			return
		}
		if _, found := idx[id]; !found {
			b.problem("%s references unknown %s %q", where, kind, id)
			ok = false
		}
	}
	check("branch", branch, b.c.branchIndex)
	check("contract type", contract, b.c.contractIndex)
	check("coparticipation mode", copart, b.c.copartIndex)
	check("product", product, b.c.productIndex)
	check("age bracket", age, b.c.ageIndex)
	return ok
}
