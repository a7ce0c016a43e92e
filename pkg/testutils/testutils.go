package testutils

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/bianca-ap01/coin-swap/infra"
	infrarepo "github.com/bianca-ap01/coin-swap/infra/repository"
	"github.com/bianca-ap01/coin-swap/pkg/config"
	"github.com/bianca-ap01/coin-swap/pkg/domain/account"
	"github.com/bianca-ap01/coin-swap/pkg/money"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewSQLiteDB opens a migrated SQLite database in a per-test temp directory.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coinswap_test.db")
	db, err := infra.NewDBConnection(&config.DB{
		Url:     "sqlite://" + path,
		Migrate: true,
	}, "test")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewPostgresDB starts a Postgres container and returns a migrated connection to it.
func NewPostgresDB(t testing.TB) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pg, err := tcpostgres.Run(
		ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := infra.NewDBConnection(&config.DB{
		Url:          dsn,
		Migrate:      true,
		MaxOpenConns: 10,
		MaxIdleConns: 10,
		ConnLifetime: time.Minute,
	}, "test")
	require.NoError(t, err)
	return db
}

// SeedAccount stores an account with the given balances in minor units.
func SeedAccount(t testing.TB, db *gorm.DB, username string, pen, usd money.Amount) *account.Account {
	t.Helper()
	a, err := account.New().
		WithUsername(username).
		WithHashedPassword("not-a-real-hash").
		WithBalances(pen, usd).
		Build()
	require.NoError(t, err)
	require.NoError(t, infrarepo.NewAccountRepository(db).Create(context.Background(), a))
	return a
}

// LoadAccount reads the stored account.
func LoadAccount(t testing.TB, db *gorm.DB, username string) *account.Account {
	t.Helper()
	a, err := infrarepo.NewAccountRepository(db).GetByUsername(context.Background(), username)
	require.NoError(t, err)
	return a
}
