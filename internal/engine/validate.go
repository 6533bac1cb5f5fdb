package engine

import (
	"plan-engine/internal/catalog"
	"plan-engine/internal/model"
)

// rule is one compatibility check. violated is only consulted after every
// earlier rule passed, so ids it looks up are known to exist.
type rule struct {
	code     model.ReasonCode
	violated func(c *catalog.Catalog, s model.Selection) bool
}

// rules run in dependency order: branch, table, contract type, product,
// reimbursement mode, then the plain domain checks.
var rules = []rule{
	{model.ReasonInvalidBranch, func(c *catalog.Catalog, s model.Selection) bool {
		if s.Branch == nil {
			return false
		}
		_, ok := c.Branch(*s.Branch)
		return !ok
	}},
	{model.ReasonInvalidPriceTable, func(c *catalog.Catalog, s model.Selection) bool {
		return s.PriceTable != nil && !c.HasPriceTable(*s.PriceTable)
	}},
	{model.ReasonInvalidBranchTable, func(c *catalog.Catalog, s model.Selection) bool {
		if s.Branch == nil || s.PriceTable == nil {
			return false
		}
		b, _ := c.Branch(*s.Branch)
		return !b.PermitsTable(*s.PriceTable)
	}},
	{model.ReasonInvalidContractType, func(c *catalog.Catalog, s model.Selection) bool {
		if s.ContractType == nil {
			return false
		}
		_, ok := c.ContractType(*s.ContractType)
		return !ok
	}},
	{model.ReasonInvalidContractForBranch, func(c *catalog.Catalog, s model.Selection) bool {
		if s.Branch == nil || s.ContractType == nil {
			return false
		}
		b, _ := c.Branch(*s.Branch)
		return !b.PermitsContractType(*s.ContractType)
	}},
	{model.ReasonInvalidContractForTable, func(c *catalog.Catalog, s model.Selection) bool {
		if s.ContractType == nil || s.PriceTable == nil {
			return false
		}
		ct, _ := c.ContractType(*s.ContractType)
		return !ct.AllowsTable(*s.PriceTable)
	}},
	{model.ReasonInvalidContractCategory, func(c *catalog.Catalog, s model.Selection) bool {
		return s.ContractCategory != nil && !c.HasContractCategory(*s.ContractCategory)
	}},
	{model.ReasonInvalidCategoryForContract, func(c *catalog.Catalog, s model.Selection) bool {
		if s.ContractType == nil || s.ContractCategory == nil {
			return false
		}
		ct, _ := c.ContractType(*s.ContractType)
		return ct.Category != *s.ContractCategory
	}},
	{model.ReasonInvalidProduct, func(c *catalog.Catalog, s model.Selection) bool {
		if s.Product == nil {
			return false
		}
		_, ok := c.Product(*s.Product)
		return !ok
	}},
	{model.ReasonInvalidProductForBranch, func(c *catalog.Catalog, s model.Selection) bool {
		if s.Branch == nil || s.Product == nil {
			return false
		}
		b, _ := c.Branch(*s.Branch)
		return !b.PermitsProduct(*s.Product)
	}},
	{model.ReasonInvalidReimbursementMode, func(c *catalog.Catalog, s model.Selection) bool {
		return s.ReimbursementMode != nil && !c.HasReimbursementMode(*s.ReimbursementMode)
	}},
	{model.ReasonInvalidReimbursementForProduct, func(c *catalog.Catalog, s model.Selection) bool {
		if s.Product == nil || s.ReimbursementMode == nil {
			return false
		}
		p, _ := c.Product(*s.Product)
		return !p.Supports(*s.ReimbursementMode)
	}},
	{model.ReasonInvalidCoparticipation, func(c *catalog.Catalog, s model.Selection) bool {
		return s.Coparticipation != nil && !c.HasCoparticipation(*s.Coparticipation)
	}},
	{model.ReasonInvalidLives, func(c *catalog.Catalog, s model.Selection) bool {
		return s.Lives != nil && *s.Lives < 1
	}},
	{model.ReasonInvalidLivesForContract, func(c *catalog.Catalog, s model.Selection) bool {
		if s.Lives == nil || s.ContractType == nil {
			return false
		}
		ct, _ := c.ContractType(*s.ContractType)
		return !ct.AllowsLives(*s.Lives)
	}},
	{model.ReasonInvalidAgeBracket, func(c *catalog.Catalog, s model.Selection) bool {
		if s.AgeBracket == nil {
			return false
		}
		_, ok := c.AgeBracket(*s.AgeBracket)
		return !ok
	}},
}

// ValidateSelection reports the first violated rule. Rules whose fields are
// not all set are skipped, so a partial selection is valid as far as it goes.
func (e *Engine) ValidateSelection(sel model.Selection) model.ValidationResult {
	for _, r := range rules {
		if r.violated(e.catalog, sel) {
			return model.Invalid(r.code)
		}
	}
	return model.Valid()
}
