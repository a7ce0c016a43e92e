package eventbus

import (
	"fmt"
	"log/slog"

	"github.com/bianca-ap01/coin-swap/pkg/config"
	"github.com/bianca-ap01/coin-swap/pkg/eventbus"
)

// New builds the bus selected by cfg.Driver ("memory" or "kafka") and a
// function releasing its resources.
func New(cfg *config.EventBus, logger *slog.Logger) (eventbus.Bus, func() error, error) {
	driver := "memory"
	if cfg != nil && cfg.Driver != "" {
		driver = cfg.Driver
	}

	switch driver {
	case "memory":
		return NewWithMemory(logger), func() error { return nil }, nil
	case "kafka":
		bus, err := NewWithKafka(cfg.Kafka, logger)
		if err != nil {
			return nil, nil, err
		}
		return bus, bus.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported event bus driver %q", driver)
	}
}
