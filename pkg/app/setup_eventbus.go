// Package app assembles the services from their dependencies and
// registers the event handlers that observe committed operations.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bianca-ap01/coin-swap/pkg/domain/events"
	"github.com/bianca-ap01/coin-swap/pkg/eventbus"
)

// setupEventBus registers all event handlers with the provided event Bus.
func (a *App) setupEventBus() {
	if a.Deps.EventBus == nil {
		return
	}
	a.Deps.EventBus.Register(events.OperationCompletedType, HandleOperationCompleted(a.Deps.Logger))
}

// HandleOperationCompleted writes an audit line for every committed operation.
func HandleOperationCompleted(logger *slog.Logger) eventbus.HandlerFunc {
	log := logger.With("handler", "OperationCompleted")
	return func(_ context.Context, e events.Event) error {
		var evt events.OperationCompleted
		switch v := e.(type) {
		case events.OperationCompleted:
			evt = v
		case *events.OperationCompleted:
			evt = *v
		default:
			return fmt.Errorf("unexpected event type %T", e)
		}
		log.Info("Operation committed",
			"eventID", evt.ID,
			"kind", evt.Kind,
			"username", evt.Username,
			"counterparty", evt.Counterparty,
			"amount", evt.Amount,
			"currency", evt.Currency,
		)
		return nil
	}
}
