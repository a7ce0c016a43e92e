// Package initializer builds the process-wide dependencies from configuration.
package initializer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/bianca-ap01/coin-swap/infra"
	"github.com/bianca-ap01/coin-swap/infra/cache"
	infra_eventbus "github.com/bianca-ap01/coin-swap/infra/eventbus"
	infra_provider "github.com/bianca-ap01/coin-swap/infra/provider"
	infra_repository "github.com/bianca-ap01/coin-swap/infra/repository"
	"github.com/bianca-ap01/coin-swap/pkg/app"
	"github.com/bianca-ap01/coin-swap/pkg/config"
	"github.com/bianca-ap01/coin-swap/pkg/eventbus"
	"github.com/bianca-ap01/coin-swap/pkg/provider"
)

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (_ *app.Deps, err error) {
	deps := &app.Deps{}
	logger := setupLogger(cfg.Log, os.Stdout)
	slog.SetDefault(logger)
	deps.Logger = logger
	defer func() {
		if err != nil {
			closeAll(deps.Closers, logger)
		}
	}()

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	deps.Closers = append(deps.Closers, sqlDB.Close)
	deps.Uow = infra_repository.NewUoW(db)

	store, closeStore := initSelectionStore(cfg.Redis, logger)
	deps.Closers = append(deps.Closers, closeStore)

	deps.Rates, err = initRateSelector(cfg.ExchangeRate, store, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rate selector: %w", err)
	}

	bus, closeBus, err := initEventBus(cfg.EventBus, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}
	deps.EventBus = bus
	deps.Closers = append(deps.Closers, closeBus)

	return deps, nil
}

// initSelectionStore shares the active adapter through Redis when
// REDIS_URL is set and keeps it in process memory otherwise.
func initSelectionStore(cfg *config.Redis, logger *slog.Logger) (provider.SelectionStore, func() error) {
	noop := func() error { return nil }
	if cfg == nil || cfg.URL == "" {
		return cache.NewMemorySelectionStore(), noop
	}
	store, err := cache.NewRedisSelectionStore(cfg, logger)
	if err != nil {
		logger.Warn("Invalid Redis URL, using in-memory adapter selection", "error", err)
		return cache.NewMemorySelectionStore(), noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		logger.Warn("Redis not reachable yet, selector will fall back to its local adapter", "error", err)
	}
	return store, store.Close
}

// initRateSelector registers the configured adapters and activates the default one.
func initRateSelector(
	cfg *config.ExchangeRate,
	store provider.SelectionStore,
	logger *slog.Logger,
) (*provider.Selector, error) {
	if cfg == nil {
		cfg = &config.ExchangeRate{DefaultAdapter: infra_provider.ExchangeRateAPIKey, HTTPTimeout: 5 * time.Second}
	}
	var opts []provider.Option
	if store != nil {
		opts = append(opts, provider.WithSelectionStore(store))
	}
	selector := provider.NewSelector(cfg.DefaultAdapter, logger, opts...)
	selector.Register(
		infra_provider.ExchangeRateAPIKey,
		infra_provider.NewExchangeRateAPI(cfg.ExchangeRateURL, cfg.HTTPTimeout, logger),
	)
	selector.Register(
		infra_provider.OpenERAPIKey,
		infra_provider.NewOpenERAPI(cfg.OpenERURL, cfg.HTTPTimeout, logger),
	)
	if cfg.FixedEnabled {
		selector.Register(infra_provider.FixedKey, infra_provider.NewFixed(cfg.FixedRates))
	}

	known := false
	for _, key := range selector.Keys() {
		if key == cfg.DefaultAdapter {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("default rate adapter %q is not registered (have %v)", cfg.DefaultAdapter, selector.Keys())
	}
	logger.Info("Rate adapters registered", "keys", selector.Keys(), "default", cfg.DefaultAdapter)
	return selector, nil
}

// initEventBus builds the configured bus. A Kafka bus that cannot reach its
// brokers falls back to the in-memory bus.
func initEventBus(cfg *config.EventBus, logger *slog.Logger) (eventbus.Bus, func() error, error) {
	if cfg != nil && cfg.Driver == "kafka" && (cfg.Kafka == nil || len(cfg.Kafka.Brokers) == 0) {
		return nil, nil, fmt.Errorf("kafka event bus requires EVENTBUS_KAFKA_BROKERS")
	}
	bus, closeFn, err := infra_eventbus.New(cfg, logger)
	if err == nil {
		return bus, closeFn, nil
	}
	if cfg != nil && cfg.Driver == "kafka" {
		logger.Warn("Kafka unavailable, falling back to in-memory event bus", "error", err)
		return infra_eventbus.NewWithMemory(logger), func() error { return nil }, nil
	}
	return nil, nil, err
}

func closeAll(closers []func() error, logger *slog.Logger) {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			logger.Warn("Failed to release dependency", "error", err)
		}
	}
}
