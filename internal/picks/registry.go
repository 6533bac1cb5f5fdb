package picks

import (
	"fmt"
	"sort"
	"strings"

	"plan-engine/internal/model"
)

var registry = map[string]Handler{
	model.FieldBranch:            &stringHandler{model.FieldBranch, func(s *model.Selection) **string { return &s.Branch }},
	model.FieldPriceTable:        &intHandler{model.FieldPriceTable, func(s *model.Selection) **int { return &s.PriceTable }},
	model.FieldContractType:      &stringHandler{model.FieldContractType, func(s *model.Selection) **string { return &s.ContractType }},
	model.FieldContractCategory:  &stringHandler{model.FieldContractCategory, func(s *model.Selection) **string { return &s.ContractCategory }},
	model.FieldCoparticipation:   &stringHandler{model.FieldCoparticipation, func(s *model.Selection) **string { return &s.Coparticipation }},
	model.FieldProduct:           &stringHandler{model.FieldProduct, func(s *model.Selection) **string { return &s.Product }},
	model.FieldReimbursementMode: &stringHandler{model.FieldReimbursementMode, func(s *model.Selection) **string { return &s.ReimbursementMode }},
	model.FieldAgeBracket:        &stringHandler{model.FieldAgeBracket, func(s *model.Selection) **string { return &s.AgeBracket }},
	model.FieldLives:             &intHandler{model.FieldLives, func(s *model.Selection) **int { return &s.Lives }},
}

func Get(dimension string) (Handler, bool) {
	h, ok := registry[dimension]
	return h, ok
}

// Dimensions lists the registered dimension names, sorted.
func Dimensions() []string {
	out := make([]string, 0, len(registry))
	for d := range registry {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// ParseArg reads a "dimension=value" command-line argument into a pick.
func ParseArg(arg string) (model.Pick, error) {
	dim, text, ok := strings.Cut(arg, "=")
	if !ok {
		return model.Pick{}, fmt.Errorf("pick %q: expected dimension=value", arg)
	}
	h, ok := Get(dim)
	if !ok {
		return model.Pick{}, fmt.Errorf("pick %q: unknown dimension %q", arg, dim)
	}
	raw, err := h.Encode(text)
	if err != nil {
		return model.Pick{}, fmt.Errorf("pick %q: %w", arg, err)
	}
	return model.Pick{Dimension: dim, Value: raw}, nil
}

// Build applies picks to an empty selection, last value winning.
func Build(ps []model.Pick) (model.Selection, error) {
	var sel model.Selection
	for _, p := range ps {
		h, ok := Get(p.Dimension)
		if !ok {
			return model.Selection{}, fmt.Errorf("unknown dimension %q", p.Dimension)
		}
		if _, err := h.Apply(&sel, p.Value); err != nil {
			return model.Selection{}, fmt.Errorf("%s: %w", p.Dimension, err)
		}
	}
	return sel, nil
}
