package model

// AllowedOptions lists, for every dimension the selection leaves unset, the
// catalog values that remain jointly satisfiable. Dimensions fixed by the
// selection are nil; an unset dimension with nothing left is an empty slice.
type AllowedOptions struct {
	PriceTables        []int    `json:"price_tables"`
	ContractTypes      []string `json:"contract_types"`
	ContractCategories []string `json:"contract_categories"`
	Products           []string `json:"products"`
	ReimbursementModes []string `json:"reimbursement_modes"`
}

// Narrowing lists the options a pick removed compared with the step before it.
type Narrowing struct {
	PriceTables        []int    `json:"price_tables,omitempty"`
	ContractTypes      []string `json:"contract_types,omitempty"`
	ContractCategories []string `json:"contract_categories,omitempty"`
	Products           []string `json:"products,omitempty"`
	ReimbursementModes []string `json:"reimbursement_modes,omitempty"`
}

func (n Narrowing) Empty() bool {
	return len(n.PriceTables) == 0 &&
		len(n.ContractTypes) == 0 &&
		len(n.ContractCategories) == 0 &&
		len(n.Products) == 0 &&
		len(n.ReimbursementModes) == 0
}
