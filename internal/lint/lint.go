// Package lint reports catalog findings that do not stop the engine from
// serving: overrides no valid selection can reach, valid selections without a
// price, and branch tables no contract type can use.
package lint

import (
	"errors"
	"fmt"

	"plan-engine/internal/catalog"
	"plan-engine/internal/engine"
	"plan-engine/internal/model"
)

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

const (
	CodeIntegrity        = "INTEGRITY"
	CodeDeadOverride     = "DEAD_OVERRIDE"
	CodeUnpricedTuple    = "UNPRICED_TUPLE"
	CodeUnreachableTable = "UNREACHABLE_TABLE"
)

type Issue struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Subject  string `json:"subject,omitempty"`
	Message  string `json:"message"`
}

type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues"`
}

// RunDocument builds a serialized catalog and lints it. Integrity problems
// become error issues instead of an error return.
func RunDocument(data []byte, format catalog.Format) (*Result, error) {
	c, err := catalog.Parse(data, format)
	var ie *catalog.IntegrityError
	if errors.As(err, &ie) {
		result := &Result{Issues: make([]Issue, 0, len(ie.Problems))}
		for _, p := range ie.Problems {
			result.Issues = append(result.Issues, Issue{Severity: SeverityError, Code: CodeIntegrity, Message: p})
		}
		return result, nil
	}
	if err != nil {
		return nil, err
	}
	return Run(engine.New(c)), nil
}

func Run(e *engine.Engine) *Result {
	c := e.Catalog()
	result := &Result{Valid: true, Issues: make([]Issue, 0)}

	for _, b := range c.Branches() {
		reachable := e.AllowedOptions(model.Selection{Branch: model.Ptr(b.ID)}).PriceTables
		for _, t := range b.PriceTables {
			if !contains(reachable, t) {
				result.Issues = append(result.Issues, Issue{
					Severity: SeverityInfo,
					Code:     CodeUnreachableTable,
					Subject:  b.ID,
					Message:  fmt.Sprintf("Price table %d is permitted at %s but no contract type there uses it", t, b.ID),
				})
			}
		}
	}

	overrides := c.Overrides()
	used := make([]bool, len(overrides))
	for _, k := range validTuples(e) {
		for i, o := range overrides {
			if o.Matches(k) {
				used[i] = true
			}
		}
		q, err := e.Quote(selectionOf(k))
		if err == nil && q.Status == model.QuoteUnpriced {
			result.Issues = append(result.Issues, Issue{
				Severity: SeverityWarning,
				Code:     CodeUnpricedTuple,
				Subject:  fmt.Sprintf("%s/%s/%s/%s/%s", k.Branch, k.ContractType, k.Coparticipation, k.Product, k.AgeBracket),
				Message:  "Valid combination has neither a base price nor an override",
			})
		}
	}
	for i, o := range overrides {
		if !used[i] {
			result.Issues = append(result.Issues, Issue{
				Severity: SeverityWarning,
				Code:     CodeDeadOverride,
				Subject:  o.ID,
				Message:  fmt.Sprintf("Override %s matches no valid combination", o.ID),
			})
		}
	}

	return result
}

// validTuples enumerates every full pricing tuple the validator accepts.
func validTuples(e *engine.Engine) []catalog.PriceKey {
	c := e.Catalog()
	var out []catalog.PriceKey
	for _, b := range c.Branches() {
		for _, ct := range b.ContractTypes {
			for _, cp := range c.CoparticipationModes() {
				for _, p := range b.Products {
					for _, a := range c.AgeBrackets() {
						k := catalog.PriceKey{Branch: b.ID, ContractType: ct, Coparticipation: cp.ID, Product: p, AgeBracket: a.ID}
						if e.ValidateSelection(selectionOf(k)).Valid {
							out = append(out, k)
						}
					}
				}
			}
		}
	}
	return out
}

func selectionOf(k catalog.PriceKey) model.Selection {
	return model.Selection{
		Branch:          model.Ptr(k.Branch),
		ContractType:    model.Ptr(k.ContractType),
		Coparticipation: model.Ptr(k.Coparticipation),
		Product:         model.Ptr(k.Product),
		AgeBracket:      model.Ptr(k.AgeBracket),
	}
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
