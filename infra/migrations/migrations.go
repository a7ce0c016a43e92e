// Package migrations brings the database schema up to date.
//
// Postgres is migrated with the versioned SQL files embedded in this package.
// SQLite, used for local development and tests, is migrated from the GORM
// models instead.
package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/bianca-ap01/coin-swap/infra/repository"
	"github.com/golang-migrate/migrate/v4"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

//go:embed sql/*.sql
var files embed.FS

// Up applies every pending migration to db.
func Up(db *gorm.DB) error {
	switch db.Dialector.Name() {
	case "postgres":
		return upPostgres(db)
	case "sqlite":
		return db.AutoMigrate(repository.Models()...)
	default:
		return fmt.Errorf("unsupported database dialect %q", db.Dialector.Name())
	}
}

func upPostgres(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	source, err := iofs.New(files, "sql")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}

	driver, err := migratepostgres.WithInstance(sqlDB, &migratepostgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
