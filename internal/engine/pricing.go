package engine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"plan-engine/internal/catalog"
	"plan-engine/internal/model"
)

const unpricedMessage = "No price is defined for this combination"

// Quote validates a complete selection and resolves its price, keeping an
// invalid combination apart from a valid one the catalog leaves unpriced.
// The only error is model.ErrIncompleteSelection.
func (e *Engine) Quote(sel model.Selection) (model.Quote, error) {
	if missing := sel.Missing(model.PricingFields...); len(missing) > 0 {
		return model.Quote{}, fmt.Errorf("%w: missing %s", model.ErrIncompleteSelection, strings.Join(missing, ", "))
	}
	if v := e.ValidateSelection(sel); !v.Valid {
		return model.Quote{Status: model.QuoteInvalid, ReasonCode: v.ReasonCode, Message: v.Message}, nil
	}
	lookup, ok := e.resolve(catalog.PriceKey{
		Branch:          *sel.Branch,
		ContractType:    *sel.ContractType,
		Coparticipation: *sel.Coparticipation,
		Product:         *sel.Product,
		AgeBracket:      *sel.AgeBracket,
	})
	if !ok {
		return model.Quote{Status: model.QuoteUnpriced, Message: unpricedMessage}, nil
	}
	return model.Quote{Status: model.QuotePriced, Lookup: lookup}, nil
}

// PricingLookup returns nil when the combination is invalid or unpriced.
func (e *Engine) PricingLookup(sel model.Selection) (*model.PriceLookup, error) {
	q, err := e.Quote(sel)
	if err != nil {
		return nil, err
	}
	return q.Lookup, nil
}

// ProductPrice prices a positional tuple. Every argument counts as set, so an
// empty string is an unknown value rather than a missing one.
func (e *Engine) ProductPrice(branch, contractType, coparticipation, product, ageBracket string) (decimal.Decimal, bool) {
	lookup, err := e.PricingLookup(model.Selection{
		Branch:          &branch,
		ContractType:    &contractType,
		Coparticipation: &coparticipation,
		Product:         &product,
		AgeBracket:      &ageBracket,
	})
	if err != nil || lookup == nil {
		return decimal.Decimal{}, false
	}
	return lookup.Price, true
}

// resolve applies the override layer on top of the base entry.
func (e *Engine) resolve(k catalog.PriceKey) (*model.PriceLookup, bool) {
	base, hasBase := e.catalog.BasePrice(k)
	if o, ok := e.catalog.Override(k); ok {
		lookup := &model.PriceLookup{Price: o.Price, Source: model.SourceOverride, OverrideID: o.ID}
		if hasBase {
			lookup.BasePrice = &base
		}
		return lookup, true
	}
	if !hasBase {
		return nil, false
	}
	return &model.PriceLookup{Price: base, Source: model.SourceBase}, true
}
