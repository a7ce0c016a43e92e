// Package currency defines the currency codes a wallet can hold.
package currency

import (
	"errors"
	"strings"
)

// ErrUnsupportedCurrency is returned when a code is not one of the wallet currencies.
var ErrUnsupportedCurrency = errors.New("currency not supported")

// Code represents a currency code (e.g., "USD", "PEN").
type Code string

// Wallet currency codes.
const (
	USD Code = "USD" // US Dollar
	PEN Code = "PEN" // Peruvian Sol
)

// Decimals is the number of minor-unit digits shared by every supported currency.
const Decimals = 2

var supported = []Code{PEN, USD}

// String returns the string representation of the currency code.
func (c Code) String() string {
	return string(c)
}

// IsSupported reports whether the code is one of the wallet currencies.
func (c Code) IsSupported() bool {
	for _, s := range supported {
		if c == s {
			return true
		}
	}
	return false
}

// Parse normalizes a raw code and checks it is supported.
func Parse(raw string) (Code, error) {
	c := Code(strings.ToUpper(strings.TrimSpace(raw)))
	if !c.IsSupported() {
		return "", ErrUnsupportedCurrency
	}
	return c, nil
}

// Supported returns the supported codes in a stable order.
func Supported() []Code {
	out := make([]Code, len(supported))
	copy(out, supported)
	return out
}
