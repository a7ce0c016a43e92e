// Package history holds the immutable transaction-history entries written
// for every completed ledger operation.
package history

import (
	"time"

	"github.com/google/uuid"
)

// Entry is a history line waiting to be recorded: who it belongs to and what happened.
type Entry struct {
	Username    string
	Description string
}

// Record is a stored history entry. Records are never updated or deleted.
type Record struct {
	ID          uuid.UUID `json:"-"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
	Username    string    `json:"username"`
}

// NewRecord stamps an entry with a fresh ID and the current UTC time.
func NewRecord(e Entry, now time.Time) Record {
	return Record{
		ID:          uuid.New(),
		Timestamp:   now.UTC(),
		Description: e.Description,
		Username:    e.Username,
	}
}
