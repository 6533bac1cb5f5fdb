package engine

import (
	"reflect"
	"slices"
	"sync"
	"testing"

	"plan-engine/internal/catalog"
	"plan-engine/internal/model"
)

// setters fix one field each, so subsets of a full selection can be built by
// bitmask.
var setters = []func(full model.Selection, s *model.Selection){
	func(f model.Selection, s *model.Selection) { s.Branch = f.Branch },
	func(f model.Selection, s *model.Selection) { s.PriceTable = f.PriceTable },
	func(f model.Selection, s *model.Selection) { s.ContractType = f.ContractType },
	func(f model.Selection, s *model.Selection) { s.ContractCategory = f.ContractCategory },
	func(f model.Selection, s *model.Selection) { s.Coparticipation = f.Coparticipation },
	func(f model.Selection, s *model.Selection) { s.Product = f.Product },
	func(f model.Selection, s *model.Selection) { s.ReimbursementMode = f.ReimbursementMode },
	func(f model.Selection, s *model.Selection) { s.AgeBracket = f.AgeBracket },
	func(f model.Selection, s *model.Selection) { s.Lives = f.Lives },
}

func subset(full model.Selection, mask int) model.Selection {
	var s model.Selection
	for i, set := range setters {
		if mask&(1<<i) != 0 {
			set(full, &s)
		}
	}
	return s
}

func containsAll[T comparable](outer, inner []T) bool {
	for _, v := range inner {
		if !slices.Contains(outer, v) {
			return false
		}
	}
	return true
}

func assertNarrower(t *testing.T, wider, narrower model.AllowedOptions, label string) {
	t.Helper()
	if narrower.PriceTables != nil && !containsAll(wider.PriceTables, narrower.PriceTables) {
		t.Fatalf("%s: price tables widened from %v to %v", label, wider.PriceTables, narrower.PriceTables)
	}
	if narrower.ContractTypes != nil && !containsAll(wider.ContractTypes, narrower.ContractTypes) {
		t.Fatalf("%s: contract types widened from %v to %v", label, wider.ContractTypes, narrower.ContractTypes)
	}
	if narrower.ContractCategories != nil && !containsAll(wider.ContractCategories, narrower.ContractCategories) {
		t.Fatalf("%s: categories widened from %v to %v", label, wider.ContractCategories, narrower.ContractCategories)
	}
	if narrower.Products != nil && !containsAll(wider.Products, narrower.Products) {
		t.Fatalf("%s: products widened from %v to %v", label, wider.Products, narrower.Products)
	}
	if narrower.ReimbursementModes != nil && !containsAll(wider.ReimbursementModes, narrower.ReimbursementModes) {
		t.Fatalf("%s: reimbursement modes widened from %v to %v", label, wider.ReimbursementModes, narrower.ReimbursementModes)
	}
}

func TestAllowedOptionsMonotonic(t *testing.T) {
	e := defaultEngine(t)

	fulls := []model.Selection{
		{
			Branch: model.Ptr("campinas"), PriceTable: model.Ptr(6), ContractType: model.Ptr("pme-30-99"),
			ContractCategory: model.Ptr("pme"), Coparticipation: model.Ptr("sem"), Product: model.Ptr("smart-500"),
			ReimbursementMode: model.Ptr("PARCIAL"), AgeBracket: model.Ptr("34-38"), Lives: model.Ptr(45),
		},
		// Deliberately inconsistent: fixing more fields must still only shrink.
		{
			Branch: model.Ptr("sao-jose-dos-campos"), PriceTable: model.Ptr(3), ContractType: model.Ptr("super-simples-1-vida"),
			ContractCategory: model.Ptr("adesao"), Coparticipation: model.Ptr("total"), Product: model.Ptr("smart-600"),
			ReimbursementMode: model.Ptr("TOTAL"), AgeBracket: model.Ptr("00-18"), Lives: model.Ptr(40),
		},
		{
			Branch: model.Ptr("atlantis"), PriceTable: model.Ptr(99), ContractType: model.Ptr("x"),
			ContractCategory: model.Ptr("x"), Coparticipation: model.Ptr("x"), Product: model.Ptr("x"),
			ReimbursementMode: model.Ptr("x"), AgeBracket: model.Ptr("x"), Lives: model.Ptr(-1),
		},
	}

	for _, full := range fulls {
		for mask := 0; mask < 1<<len(setters); mask++ {
			wider := e.AllowedOptions(subset(full, mask))
			for bit := range setters {
				if mask&(1<<bit) != 0 {
					continue
				}
				narrower := e.AllowedOptions(subset(full, mask|1<<bit))
				assertNarrower(t, wider, narrower, subset(full, mask|1<<bit).Key())
			}
		}
	}
}

func TestValidSelectionsArePriced(t *testing.T) {
	e := defaultEngine(t)
	c := e.Catalog()

	priced := 0
	for _, b := range c.Branches() {
		for _, ct := range c.ContractTypes() {
			for _, cp := range c.CoparticipationModes() {
				for _, p := range c.Products() {
					for _, a := range c.AgeBrackets() {
						sel := fullSelection(b.ID, ct.ID, cp.ID, p.ID, a.ID)
						if !e.ValidateSelection(sel).Valid {
							continue
						}
						lookup, err := e.PricingLookup(sel)
						if err != nil || lookup == nil {
							t.Fatalf("%s: expected a price, got %v %v", sel.Key(), lookup, err)
						}
						priced++
					}
				}
			}
		}
	}
	if priced != c.PriceCount() {
		t.Fatalf("expected %d priced tuples, got %d", c.PriceCount(), priced)
	}
}

func TestOverridesAlwaysWin(t *testing.T) {
	e := defaultEngine(t)
	c := e.Catalog()

	hits := 0
	for _, b := range c.Branches() {
		for _, ct := range b.ContractTypes {
			for _, cp := range c.CoparticipationModes() {
				for _, p := range b.Products {
					for _, a := range c.AgeBrackets() {
						k := catalog.PriceKey{Branch: b.ID, ContractType: ct, Coparticipation: cp.ID, Product: p, AgeBracket: a.ID}
						o, ok := c.Override(k)
						if !ok {
							continue
						}
						hits++
						price, ok := e.ProductPrice(k.Branch, k.ContractType, k.Coparticipation, k.Product, k.AgeBracket)
						if !ok || !price.Equal(o.Price) {
							t.Fatalf("%v: expected override %s, got %s", k, o.Price, price)
						}
					}
				}
			}
		}
	}
	if hits == 0 {
		t.Fatal("expected the default catalog to exercise at least one override")
	}
}

func TestIdempotentAndConcurrent(t *testing.T) {
	e := defaultEngine(t)
	sel := fullSelection("sao-paulo", "super-simples-2-29-mei", "parcial", "smart-ambulatorial", "19-23")

	firstValidation := e.ValidateSelection(sel)
	firstLookup, _ := e.PricingLookup(sel)
	firstOptions := e.AllowedOptions(sel)

	var wg sync.WaitGroup
	errs := make(chan string, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if v := e.ValidateSelection(sel); !reflect.DeepEqual(v, firstValidation) {
				errs <- "validation changed"
			}
			if l, _ := e.PricingLookup(sel); l == nil || !l.Price.Equal(firstLookup.Price) {
				errs <- "price changed"
			}
			if o := e.AllowedOptions(sel); !reflect.DeepEqual(o, firstOptions) {
				errs <- "options changed"
			}
		}()
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Fatal(msg)
	}
}
