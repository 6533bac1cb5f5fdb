package picks

import (
	"testing"

	json "github.com/goccy/go-json"

	"plan-engine/internal/model"
)

func TestApplyStringAndClear(t *testing.T) {
	h, ok := Get(model.FieldBranch)
	if !ok {
		t.Fatal("expected a branch handler")
	}
	var sel model.Selection

	replaced, err := h.Apply(&sel, json.RawMessage(`"campinas"`))
	if err != nil || replaced {
		t.Fatalf("expected first pick to set without replacing, got replaced=%v err=%v", replaced, err)
	}
	if sel.Branch == nil || *sel.Branch != "campinas" {
		t.Fatalf("expected branch campinas, got %v", sel.Branch)
	}

	replaced, err = h.Apply(&sel, json.RawMessage(`"santos"`))
	if err != nil || !replaced {
		t.Fatalf("expected second pick to replace, got replaced=%v err=%v", replaced, err)
	}

	replaced, err = h.Apply(&sel, json.RawMessage(`null`))
	if err != nil || !replaced || sel.Branch != nil {
		t.Fatalf("expected null to clear the branch, got %v err=%v", sel.Branch, err)
	}
}

func TestApplyIntRejectsText(t *testing.T) {
	h, _ := Get(model.FieldPriceTable)
	var sel model.Selection
	if _, err := h.Apply(&sel, json.RawMessage(`"three"`)); err == nil {
		t.Fatal("expected an error for a non-integer price table")
	}
	if sel.PriceTable != nil {
		t.Fatal("a rejected pick must leave the selection unchanged")
	}
	if _, err := h.Apply(&sel, json.RawMessage(`3`)); err != nil || *sel.PriceTable != 3 {
		t.Fatalf("expected price table 3, got %v err=%v", sel.PriceTable, err)
	}
}

func TestDimensionsCoverSelection(t *testing.T) {
	dims := Dimensions()
	if len(dims) != 9 {
		t.Fatalf("expected 9 dimensions, got %d: %v", len(dims), dims)
	}
	for _, d := range dims {
		h, _ := Get(d)
		if h.Dimension() != d {
			t.Fatalf("handler for %s reports %s", d, h.Dimension())
		}
	}
	if _, ok := Get("color"); ok {
		t.Fatal("expected no handler for color")
	}
}

func TestParseArgAndBuild(t *testing.T) {
	var ps []model.Pick
	for _, arg := range []string{"branch=sao-paulo", "lives=12", "branch=campinas", "product=smart-500"} {
		p, err := ParseArg(arg)
		if err != nil {
			t.Fatalf("parse %s: %v", arg, err)
		}
		ps = append(ps, p)
	}
	sel, err := Build(ps)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if *sel.Branch != "campinas" || *sel.Lives != 12 || *sel.Product != "smart-500" {
		t.Fatalf("unexpected selection %s", sel.Key())
	}

	for _, bad := range []string{"branch", "colour=red", "lives=many"} {
		if _, err := ParseArg(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}
