package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	infraprovider "github.com/bianca-ap01/coin-swap/infra/provider"
	"github.com/bianca-ap01/coin-swap/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs before any tests and applies globally for all tests in the package.
func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)

	os.Exit(m.Run())
}

func testConfig(t *testing.T, port int) *config.App {
	t.Helper()
	return &config.App{
		Env:    "test",
		Server: &config.Server{Scheme: "http", Host: "127.0.0.1", Port: port},
		Log:    &config.Log{Format: "text", Level: 8},
		DB:     &config.DB{Url: "sqlite://" + filepath.Join(t.TempDir(), "server.db"), Migrate: true},
		Auth:   &config.Auth{Jwt: &config.Jwt{Secret: "secret", Expiry: time.Minute}},
		ExchangeRate: &config.ExchangeRate{
			DefaultAdapter: infraprovider.FixedKey,
			HTTPTimeout:    time.Second,
			FixedEnabled:   true,
			FixedRates:     map[string]float64{"USD": 1, "PEN": 3.75},
		},
		EventBus: &config.EventBus{Driver: "memory"},
	}
}

func TestNewServer(t *testing.T) {
	fiberApp, a, err := newServer(testConfig(t, 0))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = fiberApp.Test(httptest.NewRequest(http.MethodGet, "/doesnotexist", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNewServer_UnknownDefaultAdapter(t *testing.T) {
	cfg := testConfig(t, 0)
	cfg.ExchangeRate.DefaultAdapter = "banco"
	_, _, err := newServer(cfg)
	require.Error(t, err)
}

func TestServeStopsOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, testConfig(t, port)) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/health", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not stop")
	}
}
