package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is returned when a user is not authorized to perform an action
	ErrUnauthorized = errors.New("unauthorized")
)

// Ledger and rate errors
var (
	// ErrAccountNotFound is returned when the acting account does not exist.
	ErrAccountNotFound = fmt.Errorf("account %w", ErrNotFound)
	// ErrReceiverNotFound is returned when a transfer names an unknown receiver.
	ErrReceiverNotFound = fmt.Errorf("receiver %w", ErrNotFound)
	// ErrInsufficientFunds is returned when a debit exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrSameCurrency is returned when a conversion has identical source and target.
	ErrSameCurrency = errors.New("source and target currencies must differ")
	// ErrSameAccount is returned when a transfer names the sender as receiver.
	ErrSameAccount = fmt.Errorf("%w: cannot transfer to same account", ErrValidation)
	// ErrInvalidAmount is returned when an amount is not strictly positive
	// or not representable in minor units.
	ErrInvalidAmount = fmt.Errorf("%w: amount must be a positive value with at most 2 decimals", ErrValidation)
	// ErrInvalidCurrency is returned for currencies outside the wallet set.
	ErrInvalidCurrency = fmt.Errorf("%w: currency must be USD or PEN", ErrValidation)
	// ErrInvalidOperation is returned when a balance change is neither deposit nor withdraw.
	ErrInvalidOperation = fmt.Errorf("%w: operation must be deposit or withdraw", ErrValidation)
	// ErrUnknownAdapter is returned when selecting an unregistered rate adapter.
	ErrUnknownAdapter = errors.New("unknown rate adapter")
	// ErrRateUnavailable is returned when a rate source cannot produce a rate.
	ErrRateUnavailable = errors.New("exchange rate unavailable")
	// ErrConcurrentUpdate is returned when an account changed between read and write.
	ErrConcurrentUpdate = errors.New("account was modified concurrently")
)
