package initializer

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/bianca-ap01/coin-swap/infra/cache"
	infra_eventbus "github.com/bianca-ap01/coin-swap/infra/eventbus"
	infra_provider "github.com/bianca-ap01/coin-swap/infra/provider"
	"github.com/bianca-ap01/coin-swap/pkg/config"
	"github.com/bianca-ap01/coin-swap/pkg/currency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInitEventBus_DefaultsToMemory(t *testing.T) {
	bus, closeFn, err := initEventBus(&config.EventBus{Driver: ""}, discardLogger())
	require.NoError(t, err)
	require.IsType(t, &infra_eventbus.MemoryEventBus{}, bus)
	require.NoError(t, closeFn())
}

func TestInitEventBus_KafkaRequiresBrokers(t *testing.T) {
	_, _, err := initEventBus(&config.EventBus{Driver: "kafka", Kafka: &config.Kafka{}}, discardLogger())
	require.Error(t, err)
}

func TestInitEventBus_KafkaConnectionErrorFallsBackToMemory(t *testing.T) {
	cfg := &config.EventBus{Driver: "kafka", Kafka: &config.Kafka{Brokers: []string{"127.0.0.1:1"}, Topic: "t"}}
	bus, _, err := initEventBus(cfg, discardLogger())
	require.NoError(t, err)
	require.IsType(t, &infra_eventbus.MemoryEventBus{}, bus)
}

func TestInitEventBus_UnknownDriver(t *testing.T) {
	_, _, err := initEventBus(&config.EventBus{Driver: "smoke-signals"}, discardLogger())
	require.Error(t, err)
}

func TestInitSelectionStore(t *testing.T) {
	store, closeFn := initSelectionStore(nil, discardLogger())
	assert.IsType(t, &cache.MemorySelectionStore{}, store)
	assert.NoError(t, closeFn())

	store, closeFn = initSelectionStore(&config.Redis{URL: "not a url"}, discardLogger())
	assert.IsType(t, &cache.MemorySelectionStore{}, store)
	assert.NoError(t, closeFn())

	store, closeFn = initSelectionStore(&config.Redis{URL: "redis://127.0.0.1:1/0", DialTimeout: 100 * time.Millisecond}, discardLogger())
	assert.IsType(t, &cache.RedisSelectionStore{}, store)
	assert.NoError(t, closeFn())
}

func TestInitRateSelector(t *testing.T) {
	cfg := &config.ExchangeRate{
		DefaultAdapter: infra_provider.FixedKey,
		HTTPTimeout:    time.Second,
		FixedEnabled:   true,
		FixedRates:     map[string]float64{"USD": 1, "PEN": 3.75},
	}
	selector, err := initRateSelector(cfg, cache.NewMemorySelectionStore(), discardLogger())
	require.NoError(t, err)
	assert.Equal(t,
		[]string{infra_provider.ExchangeRateAPIKey, infra_provider.OpenERAPIKey, infra_provider.FixedKey},
		selector.Keys())

	rate, err := selector.GetRate(context.Background(), currency.USD, currency.PEN)
	require.NoError(t, err)
	assert.Equal(t, "3.75", rate.String())
}

func TestInitRateSelector_UnknownDefault(t *testing.T) {
	cfg := &config.ExchangeRate{DefaultAdapter: infra_provider.FixedKey, HTTPTimeout: time.Second}
	_, err := initRateSelector(cfg, nil, discardLogger())
	require.Error(t, err)
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(&config.Log{Format: "json", Level: 0, Prefix: "[test]"}, &buf)
	logger.Info("hello", "username", "ana")
	logger.Debug("hidden")
	assert.Contains(t, buf.String(), `"username":"ana"`)
	assert.NotContains(t, buf.String(), "hidden")
}

func TestInitializeDependencies_SQLite(t *testing.T) {
	cfg := &config.App{
		Env: "test",
		Log: &config.Log{Format: "text", Level: 8},
		DB:  &config.DB{Url: "sqlite://" + filepath.Join(t.TempDir(), "init.db"), Migrate: true},
		ExchangeRate: &config.ExchangeRate{
			DefaultAdapter: infra_provider.ExchangeRateAPIKey,
			HTTPTimeout:    time.Second,
		},
		EventBus: &config.EventBus{Driver: "memory"},
	}
	deps, err := InitializeDependencies(cfg)
	require.NoError(t, err)
	require.NotNil(t, deps.Uow)
	require.NotNil(t, deps.Rates)
	require.NotNil(t, deps.EventBus)
	for i := len(deps.Closers) - 1; i >= 0; i-- {
		assert.NoError(t, deps.Closers[i]())
	}
}
