// Package history appends and lists the per-user transaction history.
package history

import (
	"context"
	"log/slog"
	"time"

	historydomain "github.com/bianca-ap01/coin-swap/pkg/domain/history"
	"github.com/bianca-ap01/coin-swap/pkg/repository"
)

// Recorder writes history entries and reads them back.
type Recorder struct {
	uow    repository.UnitOfWork
	now    func() time.Time
	logger *slog.Logger
}

// NewRecorder creates a Recorder reading through uow.
func NewRecorder(uow repository.UnitOfWork, logger *slog.Logger) *Recorder {
	return &Recorder{uow: uow, now: time.Now, logger: logger}
}

// Append stamps entries with the current UTC time and stores them through
// tx. Pass the UnitOfWork of the running transaction so the records commit
// or roll back with the balance change that produced them.
func (r *Recorder) Append(ctx context.Context, tx repository.UnitOfWork, entries ...historydomain.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	repo, err := tx.HistoryRepository()
	if err != nil {
		return err
	}
	now := r.now()
	records := make([]historydomain.Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, historydomain.NewRecord(e, now))
	}
	if err := repo.Append(ctx, records...); err != nil {
		r.logger.Error("Append history failed", "entries", len(entries), "error", err)
		return err
	}
	return nil
}

// ListFor returns username's records, newest first.
// A user with no history gets an empty slice.
func (r *Recorder) ListFor(ctx context.Context, username string) ([]historydomain.Record, error) {
	repo, err := r.uow.HistoryRepository()
	if err != nil {
		return nil, err
	}
	records, err := repo.ListByUsername(ctx, username)
	if err != nil {
		r.logger.Error("List history failed", "username", username, "error", err)
		return nil, err
	}
	if records == nil {
		records = []historydomain.Record{}
	}
	return records, nil
}
