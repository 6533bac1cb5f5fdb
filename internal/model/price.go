package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrIncompleteSelection is returned when a pricing call is made without
// every field of the pricing tuple. It is a caller contract violation and is
// never reported as a reason code.
var ErrIncompleteSelection = errors.New("incomplete selection")

type PriceSource string

const (
	SourceBase     PriceSource = "base"
	SourceOverride PriceSource = "override"
)

// PriceLookup is a resolved price. Values carry the catalog's stored precision.
type PriceLookup struct {
	Price      decimal.Decimal  `json:"price"`
	Source     PriceSource      `json:"source"`
	OverrideID string           `json:"override_id,omitempty"`
	BasePrice  *decimal.Decimal `json:"base_price,omitempty"`
}

type QuoteStatus string

const (
	QuotePriced   QuoteStatus = "PRICED"
	QuoteInvalid  QuoteStatus = "INVALID"
	QuoteUnpriced QuoteStatus = "UNPRICED"
)

// Quote separates an invalid combination from a valid one the catalog does
// not price.
type Quote struct {
	Status     QuoteStatus  `json:"status"`
	ReasonCode ReasonCode   `json:"reason_code,omitempty"`
	Message    string       `json:"message,omitempty"`
	Lookup     *PriceLookup `json:"lookup,omitempty"`
}
