package repository

import "context"

// UnitOfWork defines the contract for transactional work and repository access.
//
// Repositories obtained from the UnitOfWork passed to Do share the
// transaction, so every write made through them commits or rolls back
// together. Repositories obtained outside Do run in autocommit mode and
// are meant for reads.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary.
	// If fn returns an error, the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// AccountRepository returns the account repository bound to the current session.
	AccountRepository() (AccountRepository, error)

	// HistoryRepository returns the history repository bound to the current session.
	HistoryRepository() (HistoryRepository, error)
}
