// Package events defines the notifications emitted after a ledger
// operation has been committed.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Type identifies an event kind on the bus.
type Type string

// Event is implemented by every bus message.
type Event interface {
	Type() Type
}

// String returns the type name.
func (t Type) String() string { return string(t) }

// OperationCompletedType is the bus key for OperationCompleted.
const OperationCompletedType Type = "OperationCompleted"

// EventTypes maps each event type to a constructor used when decoding
// events received from an external broker.
var EventTypes = map[Type]func() Event{
	OperationCompletedType: func() Event { return &OperationCompleted{} },
}

// OperationCompleted is emitted once the balance change and its history are committed.
type OperationCompleted struct {
	ID           uuid.UUID `json:"id"`
	Kind         string    `json:"kind"`
	Username     string    `json:"username"`
	Counterparty string    `json:"counterparty,omitempty"`
	Currency     string    `json:"currency"`
	Amount       string    `json:"amount"`
	Description  string    `json:"description"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Type implements Event.
func (OperationCompleted) Type() Type { return OperationCompletedType }

// PartitionKey keeps every event of one user on the same broker partition.
func (e OperationCompleted) PartitionKey() string { return e.Username }
