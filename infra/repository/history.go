package repository

import (
	"context"

	"github.com/bianca-ap01/coin-swap/pkg/domain/history"
	"github.com/bianca-ap01/coin-swap/pkg/repository"
	"gorm.io/gorm"
)

type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new HistoryRepository backed by db.
func NewHistoryRepository(db *gorm.DB) repository.HistoryRepository {
	return &historyRepository{db: db}
}

// Append implements repository.HistoryRepository.
func (r *historyRepository) Append(ctx context.Context, records ...history.Record) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]TransactionRecord, 0, len(records))
	for _, rec := range records {
		rows = append(rows, TransactionRecord{
			ID:          rec.ID,
			Username:    rec.Username,
			Description: rec.Description,
			Timestamp:   rec.Timestamp,
		})
	}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&rows).Error
	})
}

// ListByUsername implements repository.HistoryRepository.
func (r *historyRepository) ListByUsername(ctx context.Context, username string) ([]history.Record, error) {
	var rows []TransactionRecord
	err := WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("username = ?", username).
			Order("timestamp DESC").
			Order("seq DESC").
			Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	out := make([]history.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, history.Record{
			ID:          row.ID,
			Timestamp:   row.Timestamp.UTC(),
			Description: row.Description,
			Username:    row.Username,
		})
	}
	return out, nil
}
