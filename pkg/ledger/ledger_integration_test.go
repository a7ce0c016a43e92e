//go:build integration

package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	infrarepo "github.com/bianca-ap01/coin-swap/infra/repository"
	"github.com/bianca-ap01/coin-swap/pkg/domain"
	"github.com/bianca-ap01/coin-swap/pkg/ledger"
	"github.com/bianca-ap01/coin-swap/pkg/money"
	"github.com/bianca-ap01/coin-swap/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresConcurrentWithdrawals(t *testing.T) {
	db := testutils.NewPostgresDB(t)
	l := ledger.New(infrarepo.NewUoW(db), nil, testutils.DiscardLogger())
	testutils.SeedAccount(t, db, "x", 0, 10000)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Withdraw(context.Background(), "x", usd(t, 30), nil)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok int
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.True(t, errors.Is(err, domain.ErrInsufficientFunds), "unexpected error: %v", err)
	}
	assert.Equal(t, 3, ok)
	assert.Equal(t, money.Amount(1000), testutils.LoadAccount(t, db, "x").BalanceUSD.Amount())
}

func TestPostgresOppositeTransfersDoNotDeadlock(t *testing.T) {
	db := testutils.NewPostgresDB(t)
	l := ledger.New(infrarepo.NewUoW(db), nil, testutils.DiscardLogger())
	testutils.SeedAccount(t, db, "ana", 5000, 0)
	testutils.SeedAccount(t, db, "beto", 5000, 0)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := l.Transfer(context.Background(), "ana", "beto", pen(t, 1), nil)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := l.Transfer(context.Background(), "beto", "ana", pen(t, 1), nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	ana := testutils.LoadAccount(t, db, "ana")
	beto := testutils.LoadAccount(t, db, "beto")
	assert.Equal(t, money.Amount(5000), ana.BalancePEN.Amount())
	assert.Equal(t, money.Amount(5000), beto.BalancePEN.Amount())
}
