package handler

import (
	"plan-engine/internal/catalog"
	"plan-engine/internal/engine"
)

type catalogSummary struct {
	Version              string                 `json:"version"`
	PriceTables          []int                  `json:"price_tables"`
	AgeBrackets          []string               `json:"age_brackets"`
	CoparticipationModes []string               `json:"coparticipation_modes"`
	ReimbursementModes   []string               `json:"reimbursement_modes"`
	ContractCategories   []string               `json:"contract_categories"`
	ContractTypes        []catalog.ContractType `json:"contract_types"`
	Products             []catalog.Product      `json:"products"`
	Branches             []catalog.Branch       `json:"branches"`
	PriceCount           int                    `json:"price_count"`
	OverrideCount        int                    `json:"override_count"`
}

func summarize(e *engine.Engine) catalogSummary {
	c := e.Catalog()
	s := catalogSummary{
		Version:            c.Version(),
		PriceTables:        c.PriceTables(),
		ReimbursementModes: c.ReimbursementModes(),
		ContractTypes:      c.ContractTypes(),
		Products:           c.Products(),
		Branches:           c.Branches(),
		PriceCount:         c.PriceCount(),
		OverrideCount:      len(c.Overrides()),
	}
	for _, a := range c.AgeBrackets() {
		s.AgeBrackets = append(s.AgeBrackets, a.ID)
	}
	for _, m := range c.CoparticipationModes() {
		s.CoparticipationModes = append(s.CoparticipationModes, m.ID)
	}
	for _, cat := range c.ContractCategories() {
		s.ContractCategories = append(s.ContractCategories, cat.ID)
	}
	return s
}
