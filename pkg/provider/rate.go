// Package provider defines the exchange-rate source contract and the
// selector that decides which source answers rate lookups.
package provider

import (
	"context"
	"encoding/json"

	"github.com/bianca-ap01/coin-swap/pkg/currency"
	"github.com/shopspring/decimal"
)

// RateSource fetches live exchange rates from one external source.
type RateSource interface {
	// GetRate returns how many units of to one unit of from buys.
	// Implementations fail with domain.ErrRateUnavailable when the source
	// cannot be reached or does not quote the pair. The rate is always positive.
	GetRate(ctx context.Context, from, to currency.Code) (decimal.Decimal, error)

	// Name returns the human-readable source name.
	Name() string
}

// RateResult is one source's answer in a ListAllRates call.
type RateResult struct {
	Rate decimal.Decimal
	Err  error
}

// Value returns the rate as a float, or "Error: ..." when the lookup failed.
func (r RateResult) Value() any {
	if r.Err != nil {
		return "Error: " + r.Err.Error()
	}
	f, _ := r.Rate.Float64()
	return f
}

// MarshalJSON renders the rate as a bare JSON number or the error as a string.
func (r RateResult) MarshalJSON() ([]byte, error) {
	if r.Err != nil {
		return json.Marshal("Error: " + r.Err.Error())
	}
	return json.Marshal(json.Number(r.Rate.String()))
}
