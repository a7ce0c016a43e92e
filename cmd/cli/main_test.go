package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	infraeventbus "github.com/bianca-ap01/coin-swap/infra/eventbus"
	infraprovider "github.com/bianca-ap01/coin-swap/infra/provider"
	infrarepo "github.com/bianca-ap01/coin-swap/infra/repository"
	"github.com/bianca-ap01/coin-swap/pkg/app"
	"github.com/bianca-ap01/coin-swap/pkg/config"
	"github.com/bianca-ap01/coin-swap/pkg/domain"
	"github.com/bianca-ap01/coin-swap/pkg/provider"
	"github.com/bianca-ap01/coin-swap/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	logger := testutils.DiscardLogger()
	selector := provider.NewSelector(infraprovider.FixedKey, logger)
	selector.Register(infraprovider.FixedKey, infraprovider.NewFixed(map[string]float64{"USD": 1, "PEN": 3.75}))
	return app.New(&app.Deps{
		Uow:      infrarepo.NewUoW(testutils.NewSQLiteDB(t)),
		Rates:    selector,
		EventBus: infraeventbus.NewWithMemory(logger),
		Logger:   logger,
	}, &config.App{Auth: &config.Auth{Jwt: &config.Jwt{Secret: "s", Expiry: time.Minute}}})
}

func run(t *testing.T, a *app.App, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := execute(context.Background(), a, args, &out)
	return out.String(), err
}

func TestExecute(t *testing.T) {
	a := newTestApp(t)

	out, err := run(t, a, "register", "ana", "x")
	require.NoError(t, err)
	assert.Equal(t, "Account created: ana (PEN 100.00, USD 0.00)\n", out)
	_, err = run(t, a, "register", "beto")
	require.NoError(t, err)

	out, err = run(t, a, "deposit", "ana", "25", "USD")
	require.NoError(t, err)
	assert.Equal(t, "ana depositó 25.0 USD\n", out)

	out, err = run(t, a, "transfer", "ana", "beto", "10", "PEN")
	require.NoError(t, err)
	assert.Equal(t, "ana transfirió 10.0 PEN a beto\n", out)

	out, err = run(t, a, "convert", "ana", "USD", "PEN", "2")
	require.NoError(t, err)
	assert.Equal(t, "ana convirtió 2.00 USD a 7.50 PEN (tasa 3.7500)\n", out)

	out, err = run(t, a, "withdraw", "ana", "5", "USD")
	require.NoError(t, err)
	assert.Equal(t, "ana retiró 5.0 USD\n", out)

	out, err = run(t, a, "balance", "ana")
	require.NoError(t, err)
	assert.Equal(t, "ana balance: PEN 97.50, USD 18.00\n", out)

	out, err = run(t, a, "history", "ana")
	require.NoError(t, err)
	assert.Contains(t, out, "ana convirtió 2.00 USD a 7.50 PEN (tasa 3.7500)")

	out, err = run(t, a, "history", "nadie")
	require.NoError(t, err)
	assert.Equal(t, "No transactions\n", out)
}

func TestExecute_Rates(t *testing.T) {
	a := newTestApp(t)

	out, err := run(t, a, "rates")
	require.NoError(t, err)
	assert.Equal(t, "* fixed: 3.75\n", out)

	_, err = run(t, a, "rates", "EUR")
	require.ErrorIs(t, err, domain.ErrInvalidCurrency)

	_, err = run(t, a, "select", "banco")
	require.ErrorIs(t, err, domain.ErrUnknownAdapter)
}

func TestExecute_Usage(t *testing.T) {
	a := newTestApp(t)
	for _, args := range [][]string{{}, {"balance"}, {"transfer", "ana"}, {"fly"}} {
		_, err := run(t, a, args...)
		assert.ErrorIs(t, err, errUsage, "%v", args)
	}

	_, err := run(t, a, "deposit", "ana", "lots", "PEN")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errUsage)
}
