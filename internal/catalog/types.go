package catalog

import (
	"slices"

	"github.com/shopspring/decimal"
)

type AgeBracket struct {
	ID     string `json:"id" yaml:"id"`
	MinAge int    `json:"min_age" yaml:"min_age"`
	MaxAge *int   `json:"max_age,omitempty" yaml:"max_age,omitempty"` // nil = open-ended
}

type CoparticipationMode struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type ContractCategory struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type ContractType struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	MinLives    int    `json:"min_lives" yaml:"min_lives"`
	MaxLives    int    `json:"max_lives" yaml:"max_lives"`
	Category    string `json:"category" yaml:"category"`
	PriceTables []int  `json:"price_tables" yaml:"price_tables"`
}

func (c ContractType) AllowsTable(table int) bool {
	return slices.Contains(c.PriceTables, table)
}

func (c ContractType) AllowsLives(lives int) bool {
	return lives >= c.MinLives && lives <= c.MaxLives
}

type Product struct {
	ID                 string   `json:"id" yaml:"id"`
	Name               string   `json:"name" yaml:"name"`
	Description        string   `json:"description,omitempty" yaml:"description,omitempty"`
	ReimbursementModes []string `json:"reimbursement_modes" yaml:"reimbursement_modes"`
}

func (p Product) Supports(mode string) bool {
	return slices.Contains(p.ReimbursementModes, mode)
}

// Branch is a sales location and the subsets of the catalog it offers.
type Branch struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	PriceTables   []int    `json:"price_tables" yaml:"price_tables"`
	ContractTypes []string `json:"contract_types" yaml:"contract_types"`
	Products      []string `json:"products" yaml:"products"`
}

func (b Branch) PermitsTable(table int) bool {
	return slices.Contains(b.PriceTables, table)
}

func (b Branch) PermitsContractType(id string) bool {
	return slices.Contains(b.ContractTypes, id)
}

func (b Branch) PermitsProduct(id string) bool {
	return slices.Contains(b.Products, id)
}

// PriceKey is the full pricing tuple.
type PriceKey struct {
	Branch          string
	ContractType    string
	Coparticipation string
	Product         string
	AgeBracket      string
}

// PriceRow carries one base price per age bracket, in catalog bracket order.
type PriceRow struct {
	Branch          string            `json:"branch" yaml:"branch"`
	ContractType    string            `json:"contract_type" yaml:"contract_type"`
	Coparticipation string            `json:"coparticipation" yaml:"coparticipation"`
	Product         string            `json:"product" yaml:"product"`
	ByAge           []decimal.Decimal `json:"by_age" yaml:"by_age"`
}

// PriceOverride supersedes base prices for every tuple it matches. Empty key
// fields are wildcards.
type PriceOverride struct {
	ID              string          `json:"id" yaml:"id"`
	Branch          string          `json:"branch,omitempty" yaml:"branch,omitempty"`
	ContractType    string          `json:"contract_type,omitempty" yaml:"contract_type,omitempty"`
	Coparticipation string          `json:"coparticipation,omitempty" yaml:"coparticipation,omitempty"`
	Product         string          `json:"product,omitempty" yaml:"product,omitempty"`
	AgeBracket      string          `json:"age_bracket,omitempty" yaml:"age_bracket,omitempty"`
	Price           decimal.Decimal `json:"price" yaml:"price"`
}

func (o PriceOverride) fields() [5]string {
	return [5]string{o.Branch, o.ContractType, o.Coparticipation, o.Product, o.AgeBracket}
}

// Matches reports whether every non-wildcard field equals the key.
func (o PriceOverride) Matches(k PriceKey) bool {
	want := [5]string{k.Branch, k.ContractType, k.Coparticipation, k.Product, k.AgeBracket}
	for i, f := range o.fields() {
		if f != "" && f != want[i] {
			return false
		}
	}
	return true
}

// Specificity is the number of non-wildcard fields.
func (o PriceOverride) Specificity() int {
	n := 0
	for _, f := range o.fields() {
		if f != "" {
			n++
		}
	}
	return n
}
