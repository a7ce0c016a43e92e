package money

import "errors"

// Common money package errors
var (
	// ErrInvalidAmount is returned when an amount is not a finite number.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidDecimalPlaces is returned when an amount has more decimal
	// places than the currency allows.
	ErrInvalidDecimalPlaces = errors.New("amount has more decimal places than allowed by the currency")

	// ErrAmountExceedsMaxSafeInt is returned when an amount exceeds the maximum safe integer value.
	ErrAmountExceedsMaxSafeInt = errors.New("amount exceeds maximum safe integer value")

	// ErrInvalidCurrency is returned for unsupported currency codes.
	ErrInvalidCurrency = errors.New("invalid currency code")

	// ErrMismatchedCurrencies is returned when performing operations on money with
	// different currencies
	ErrMismatchedCurrencies = errors.New("mismatched currencies")

	// ErrInvalidRate is returned when a conversion rate is zero or negative.
	ErrInvalidRate = errors.New("conversion rate must be positive")
)
