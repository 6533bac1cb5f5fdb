package engine

import (
	"testing"

	"github.com/shopspring/decimal"

	"plan-engine/internal/catalog"
)

func defaultEngine(t *testing.T) *Engine {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}
	return New(c)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func intPtr(v int) *int { return &v }

// smallDocument is a one-branch catalog used to reach cases the bundled
// catalog does not have: unpriced tuples and override-only prices.
func smallDocument() *catalog.Document {
	return &catalog.Document{
		Version:     "test",
		PriceTables: []int{1, 2},
		AgeBrackets: []catalog.AgeBracket{
			{ID: "a", MinAge: 0, MaxAge: intPtr(29)},
			{ID: "b", MinAge: 30},
		},
		CoparticipationModes: []catalog.CoparticipationMode{{ID: "x", Name: "X"}},
		ReimbursementModes:   []string{"R1", "R2"},
		ContractCategories:   []catalog.ContractCategory{{ID: "cat", Name: "Cat"}},
		ContractTypes: []catalog.ContractType{
			{ID: "c1", Name: "C1", MinLives: 1, MaxLives: 5, Category: "cat", PriceTables: []int{1}},
			{ID: "c2", Name: "C2", MinLives: 1, MaxLives: 5, Category: "cat", PriceTables: []int{2}},
		},
		Products: []catalog.Product{
			{ID: "p1", Name: "P1", ReimbursementModes: []string{"R1"}},
			{ID: "p2", Name: "P2", ReimbursementModes: []string{"R1", "R2"}},
		},
		Branches: []catalog.Branch{
			{ID: "b1", Name: "B1", PriceTables: []int{1, 2}, ContractTypes: []string{"c1", "c2"}, Products: []string{"p1", "p2"}},
		},
		Prices: []catalog.PriceRow{
			{Branch: "b1", ContractType: "c1", Coparticipation: "x", Product: "p1", ByAge: []decimal.Decimal{dec("10.00"), dec("20.00")}},
		},
		Overrides: []catalog.PriceOverride{
			{ID: "o-wild", Product: "p2", AgeBracket: "b", Price: dec("99.00")},
			{ID: "o-specific", Branch: "b1", Product: "p2", AgeBracket: "b", Price: dec("77.00")},
			{ID: "t1", Branch: "b1", ContractType: "c2", AgeBracket: "a", Price: dec("5.00")},
			{ID: "t2", ContractType: "c2", Product: "p2", AgeBracket: "a", Price: dec("6.00")},
		},
	}
}

func smallEngine(t *testing.T) *Engine {
	t.Helper()
	c, err := catalog.Build(smallDocument())
	if err != nil {
		t.Fatalf("build small catalog: %v", err)
	}
	return New(c)
}
