package provider

import (
	"context"
	"fmt"

	"github.com/bianca-ap01/coin-swap/pkg/currency"
	"github.com/bianca-ap01/coin-swap/pkg/domain"
	"github.com/bianca-ap01/coin-swap/pkg/provider"
	"github.com/shopspring/decimal"
)

// FixedKey is the selector key of Fixed.
const FixedKey = "fixed"

// Fixed answers from a static table of quotes against a common base,
// for offline development and tests.
type Fixed struct {
	rates map[string]decimal.Decimal
}

// NewFixed builds the adapter from units-per-base quotes, e.g.
// {"USD": 1, "PEN": 3.75}.
func NewFixed(quotes map[string]float64) *Fixed {
	rates := make(map[string]decimal.Decimal, len(quotes))
	for code, q := range quotes {
		rates[code] = decimal.NewFromFloat(q)
	}
	return &Fixed{rates: rates}
}

// GetRate implements provider.RateSource.
func (f *Fixed) GetRate(_ context.Context, from, to currency.Code) (decimal.Decimal, error) {
	rateFrom, err := quote(f.rates, from.String())
	if err != nil {
		return decimal.Zero, err
	}
	rateTo, err := quote(f.rates, to.String())
	if err != nil {
		return decimal.Zero, err
	}
	rate := rateTo.DivRound(rateFrom, 12)
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: non-positive rate %s/%s", domain.ErrRateUnavailable, from, to)
	}
	return rate, nil
}

// Name implements provider.RateSource.
func (f *Fixed) Name() string {
	return "Fixed rates (offline)"
}

var _ provider.RateSource = (*Fixed)(nil)
