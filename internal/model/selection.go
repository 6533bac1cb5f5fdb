package model

import "strings"

// Selection is a caller-held, partially filled set of picks. A nil field is
// unset and imposes no constraint; a non-nil field is set even when its value
// is unknown to the catalog.
type Selection struct {
	Branch            *string `json:"branch,omitempty"`
	PriceTable        *int    `json:"price_table,omitempty"`
	ContractType      *string `json:"contract_type,omitempty"`
	ContractCategory  *string `json:"contract_category,omitempty"`
	Coparticipation   *string `json:"coparticipation,omitempty"`
	Product           *string `json:"product,omitempty"`
	ReimbursementMode *string `json:"reimbursement_mode,omitempty"`
	AgeBracket        *string `json:"age_bracket,omitempty"`
	Lives             *int    `json:"lives,omitempty"`
}

// Ptr returns a pointer to v, for building selections inline.
func Ptr[T any](v T) *T {
	return &v
}

// Field names as used in JSON payloads and error messages.
const (
	FieldBranch            = "branch"
	FieldPriceTable        = "price_table"
	FieldContractType      = "contract_type"
	FieldContractCategory  = "contract_category"
	FieldCoparticipation   = "coparticipation"
	FieldProduct           = "product"
	FieldReimbursementMode = "reimbursement_mode"
	FieldAgeBracket        = "age_bracket"
	FieldLives             = "lives"
)

// PricingFields are the fields a price lookup needs.
var PricingFields = []string{
	FieldBranch,
	FieldContractType,
	FieldCoparticipation,
	FieldProduct,
	FieldAgeBracket,
}

// IsSet reports whether the named field holds a value.
func (s Selection) IsSet(field string) bool {
	switch field {
	case FieldBranch:
		return s.Branch != nil
	case FieldPriceTable:
		return s.PriceTable != nil
	case FieldContractType:
		return s.ContractType != nil
	case FieldContractCategory:
		return s.ContractCategory != nil
	case FieldCoparticipation:
		return s.Coparticipation != nil
	case FieldProduct:
		return s.Product != nil
	case FieldReimbursementMode:
		return s.ReimbursementMode != nil
	case FieldAgeBracket:
		return s.AgeBracket != nil
	case FieldLives:
		return s.Lives != nil
	}
	return false
}

// Missing returns the fields from required that are unset, in the given order.
func (s Selection) Missing(required ...string) []string {
	var missing []string
	for _, f := range required {
		if !s.IsSet(f) {
			missing = append(missing, f)
		}
	}
	return missing
}

// Key renders the pricing tuple for logs. Unset fields print as "*".
func (s Selection) Key() string {
	parts := []*string{s.Branch, s.ContractType, s.Coparticipation, s.Product, s.AgeBracket}
	out := make([]string, len(parts))
	for i, p := range parts {
		if p == nil {
			out[i] = "*"
		} else {
			out[i] = *p
		}
	}
	return strings.Join(out, "/")
}
