package app

import (
	"errors"
	"log/slog"

	"github.com/bianca-ap01/coin-swap/pkg/config"
	"github.com/bianca-ap01/coin-swap/pkg/eventbus"
	"github.com/bianca-ap01/coin-swap/pkg/provider"
	"github.com/bianca-ap01/coin-swap/pkg/repository"
	"github.com/bianca-ap01/coin-swap/pkg/service/auth"
	"github.com/bianca-ap01/coin-swap/pkg/service/wallet"
)

// Deps contains the infrastructure the services are built on.
type Deps struct {
	Uow      repository.UnitOfWork
	Rates    *provider.Selector
	EventBus eventbus.Bus
	Logger   *slog.Logger
	// Closers release infrastructure in reverse order on shutdown.
	Closers []func() error
}

type App struct {
	Deps          *Deps
	Config        *config.App
	AuthService   *auth.Service
	WalletService *wallet.Service
}

func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	app.setupEventBus()

	var starting *config.StartingBalance
	if cfg.Account != nil {
		starting = cfg.Account.StartingBalance
	}
	app.AuthService = auth.New(deps.Uow, cfg.Auth.Jwt, starting, deps.Logger)
	app.WalletService = wallet.New(deps.Uow, deps.Rates, deps.EventBus, deps.Logger)
	return app
}

// Close releases every dependency, returning the joined errors.
func (a *App) Close() error {
	var errs []error
	for i := len(a.Deps.Closers) - 1; i >= 0; i-- {
		if err := a.Deps.Closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
