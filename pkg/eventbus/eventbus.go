package eventbus

import (
	"context"

	"github.com/bianca-ap01/coin-swap/pkg/domain/events"
)

// HandlerFunc handles one event delivered by a Bus.
type HandlerFunc func(ctx context.Context, e events.Event) error

// Bus publishes events and dispatches them to registered handlers.
type Bus interface {
	Emit(ctx context.Context, event events.Event) error
	Register(eventType events.Type, handler HandlerFunc)
}
