package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/bianca-ap01/coin-swap/infra/initializer"
	"github.com/bianca-ap01/coin-swap/pkg/app"
	"github.com/bianca-ap01/coin-swap/pkg/config"
	"github.com/bianca-ap01/coin-swap/webapi"
	log "github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return serve(ctx, cfg)
}

// newServer wires every dependency and returns the HTTP app together with
// the application that owns the dependencies.
func newServer(cfg *config.App) (*fiber.App, *app.App, error) {
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	a := app.New(deps, cfg)
	return webapi.SetupApp(a), a, nil
}

// serve listens until ctx is cancelled, then shuts down gracefully.
func serve(ctx context.Context, cfg *config.App) error {
	fiberApp, a, err := newServer(cfg)
	if err != nil {
		return err
	}
	logger := a.Deps.Logger

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)

	errCh := make(chan error, 1)
	go func() { errCh <- fiberApp.Listen(addr) }()

	var listenErr error
	select {
	case listenErr = <-errCh:
	case <-ctx.Done():
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		listenErr = fiberApp.ShutdownWithContext(shutdownCtx)
	}

	if err := a.Close(); err != nil {
		logger.Error("Failed to release dependencies", "error", err)
		listenErr = errors.Join(listenErr, err)
	}
	if listenErr == nil {
		slog.Default().Info("Server stopped")
	}
	return listenErr
}
