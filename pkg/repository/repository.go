package repository

import (
	"context"

	"github.com/bianca-ap01/coin-swap/pkg/domain/account"
	"github.com/bianca-ap01/coin-swap/pkg/domain/history"
)

// AccountRepository defines the interface for account data access operations.
type AccountRepository interface {
	// Create inserts a new account. Duplicate usernames yield domain.ErrAlreadyExists.
	Create(ctx context.Context, a *account.Account) error

	// GetByUsername returns the account or domain.ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*account.Account, error)

	// LockByUsernames loads and write-locks the named accounts for the rest
	// of the transaction, acquiring row locks in ascending username order.
	// Usernames with no account are absent from the result.
	LockByUsernames(ctx context.Context, usernames ...string) (map[string]*account.Account, error)

	// UpdateBalances persists both balances if the stored version still
	// matches a.Version, then advances a.Version. A stale version yields
	// domain.ErrConcurrentUpdate.
	UpdateBalances(ctx context.Context, a *account.Account) error
}

// HistoryRepository defines the interface for transaction-history storage.
type HistoryRepository interface {
	// Append stores records. Records are immutable once stored.
	Append(ctx context.Context, records ...history.Record) error

	// ListByUsername returns the user's records, newest first.
	ListByUsername(ctx context.Context, username string) ([]history.Record, error)
}
