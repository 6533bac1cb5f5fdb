package model

// ReasonCode names the single compatibility rule a selection violates.
type ReasonCode string

// The closed set of reason codes, in evaluation order.
const (
	ReasonInvalidBranch                  ReasonCode = "INVALID_BRANCH"
	ReasonInvalidPriceTable              ReasonCode = "INVALID_PRICE_TABLE"
	ReasonInvalidBranchTable             ReasonCode = "INVALID_BRANCH_TABLE"
	ReasonInvalidContractType            ReasonCode = "INVALID_CONTRACT_TYPE"
	ReasonInvalidContractForBranch       ReasonCode = "INVALID_CONTRACT_FOR_BRANCH"
	ReasonInvalidContractForTable        ReasonCode = "INVALID_CONTRACT_FOR_TABLE"
	ReasonInvalidContractCategory        ReasonCode = "INVALID_CONTRACT_CATEGORY"
	ReasonInvalidCategoryForContract     ReasonCode = "INVALID_CATEGORY_FOR_CONTRACT"
	ReasonInvalidProduct                 ReasonCode = "INVALID_PRODUCT"
	ReasonInvalidProductForBranch        ReasonCode = "INVALID_PRODUCT_FOR_BRANCH"
	ReasonInvalidReimbursementMode       ReasonCode = "INVALID_REIMBURSEMENT_MODE"
	ReasonInvalidReimbursementForProduct ReasonCode = "INVALID_REIMBURSEMENT_FOR_PRODUCT"
	ReasonInvalidCoparticipation         ReasonCode = "INVALID_COPARTICIPATION"
	ReasonInvalidLives                   ReasonCode = "INVALID_LIVES"
	ReasonInvalidLivesForContract        ReasonCode = "INVALID_LIVES_FOR_CONTRACT"
	ReasonInvalidAgeBracket              ReasonCode = "INVALID_AGE_BRACKET"
)

var reasonMessages = map[ReasonCode]string{
	ReasonInvalidBranch:                  "Branch is not part of the catalog",
	ReasonInvalidPriceTable:              "Price table is not part of the catalog",
	ReasonInvalidBranchTable:             "Price table is not offered at this branch",
	ReasonInvalidContractType:            "Contract type is not part of the catalog",
	ReasonInvalidContractForBranch:       "Contract type is not offered at this branch",
	ReasonInvalidContractForTable:        "Contract type cannot be sold under this price table",
	ReasonInvalidContractCategory:        "Contract category is not part of the catalog",
	ReasonInvalidCategoryForContract:     "Contract type belongs to a different category",
	ReasonInvalidProduct:                 "Product is not part of the catalog",
	ReasonInvalidProductForBranch:        "Product is not offered at this branch",
	ReasonInvalidReimbursementMode:       "Reimbursement mode is not part of the catalog",
	ReasonInvalidReimbursementForProduct: "Product does not support this reimbursement mode",
	ReasonInvalidCoparticipation:         "Coparticipation mode is not part of the catalog",
	ReasonInvalidLives:                   "Covered lives must be at least 1",
	ReasonInvalidLivesForContract:        "Covered lives are outside the contract type's range",
	ReasonInvalidAgeBracket:              "Age bracket is not part of the catalog",
}

// ReasonMessage returns the default English message for code.
func ReasonMessage(code ReasonCode) string {
	return reasonMessages[code]
}

// ValidationResult is either valid or carries the first violated rule.
type ValidationResult struct {
	Valid      bool       `json:"valid"`
	ReasonCode ReasonCode `json:"reason_code,omitempty"`
	Message    string     `json:"message,omitempty"`
}

func Valid() ValidationResult {
	return ValidationResult{Valid: true}
}

func Invalid(code ReasonCode) ValidationResult {
	return ValidationResult{ReasonCode: code, Message: ReasonMessage(code)}
}
