// Package money provides functionality for handling monetary values.
//
// It is a value object that represents a monetary value in a specific currency.
// Invariants:
//   - Amount is always stored in the smallest currency unit (e.g., cents for USD).
//   - Currency code must be one of the supported wallet currencies.
//   - All arithmetic operations require matching currencies.
package money

import (
	"math"
	"strings"

	"github.com/bianca-ap01/coin-swap/pkg/currency"
	"github.com/shopspring/decimal"
)

// Amount represents a monetary amount as an integer in the
// smallest currency unit (e.g., cents for USD).
type Amount = int64

// Money represents a monetary value in a specific currency.
type Money struct {
	amount   Amount
	currency currency.Code
}

// New creates Money from an amount already expressed in minor units.
func New(amount Amount, code currency.Code) (Money, error) {
	if !code.IsSupported() {
		return Money{}, ErrInvalidCurrency
	}
	return Money{amount: amount, currency: code}, nil
}

// Zero returns a zero amount in the given currency.
func Zero(code currency.Code) Money {
	return Money{currency: code}
}

// FromFloat converts a major-unit amount (e.g. 12.5 USD) into Money.
// Amounts with more decimals than the currency allows are rejected
// rather than rounded.
func FromFloat(amount float64, code currency.Code) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, ErrInvalidAmount
	}
	return FromDecimal(decimal.NewFromFloat(amount), code)
}

// FromDecimal converts a major-unit decimal amount into Money.
func FromDecimal(amount decimal.Decimal, code currency.Code) (Money, error) {
	if !code.IsSupported() {
		return Money{}, ErrInvalidCurrency
	}
	if !amount.Round(currency.Decimals).Equal(amount) {
		return Money{}, ErrInvalidDecimalPlaces
	}
	minor := amount.Shift(currency.Decimals)
	if minor.GreaterThan(decimal.NewFromInt(math.MaxInt64)) ||
		minor.LessThan(decimal.NewFromInt(math.MinInt64)) {
		return Money{}, ErrAmountExceedsMaxSafeInt
	}
	return Money{amount: minor.IntPart(), currency: code}, nil
}

// Amount returns the amount in the smallest currency unit.
func (m Money) Amount() Amount {
	return m.amount
}

// Currency returns the currency of the Money object.
func (m Money) Currency() currency.Code {
	return m.currency
}

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.amount, -currency.Decimals)
}

// Float64 returns the amount in major units as a float, for presentation only.
func (m Money) Float64() float64 {
	return m.Decimal().InexactFloat64()
}

// Add adds another Money object to the current Money object.
func (m Money) Add(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, ErrMismatchedCurrencies
	}
	if (other.amount > 0 && m.amount > math.MaxInt64-other.amount) ||
		(other.amount < 0 && m.amount < math.MinInt64-other.amount) {
		return Money{}, ErrAmountExceedsMaxSafeInt
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// Subtract subtracts another Money object from the current Money object.
func (m Money) Subtract(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, ErrMismatchedCurrencies
	}
	return m.Add(Money{amount: -other.amount, currency: other.currency})
}

// LessThan reports whether m is strictly below other.
func (m Money) LessThan(other Money) (bool, error) {
	if !m.IsSameCurrency(other) {
		return false, ErrMismatchedCurrencies
	}
	return m.amount < other.amount, nil
}

// Equals checks currency and amount equality.
func (m Money) Equals(other Money) bool {
	return m.IsSameCurrency(other) && m.amount == other.amount
}

// IsSameCurrency checks if both values share a currency.
func (m Money) IsSameCurrency(other Money) bool {
	return m.currency == other.currency
}

// IsPositive returns true if the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// IsNegative returns true if the amount is less than zero.
func (m Money) IsNegative() bool {
	return m.amount < 0
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// Convert multiplies the amount by rate and expresses the result in the
// target currency, rounded half away from zero to minor units.
func (m Money) Convert(rate decimal.Decimal, to currency.Code) (Money, error) {
	if !rate.IsPositive() {
		return Money{}, ErrInvalidRate
	}
	converted := m.Decimal().Mul(rate).Round(currency.Decimals)
	return FromDecimal(converted, to)
}

// StringFixed renders the major-unit amount with exactly two decimals ("12.50").
func (m Money) StringFixed() string {
	return m.Decimal().StringFixed(currency.Decimals)
}

// StringShort renders the shortest decimal form, keeping one fractional
// digit for whole amounts ("50.0", "12.5", "0.05").
func (m Money) StringShort() string {
	s := m.Decimal().String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// String returns the amount followed by its currency code.
func (m Money) String() string {
	return m.StringFixed() + " " + m.currency.String()
}
