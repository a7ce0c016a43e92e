package infra

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bianca-ap01/coin-swap/infra/migrations"
	"github.com/bianca-ap01/coin-swap/pkg/config"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqliteScheme = "sqlite://"

// NewDBConnection opens the database named by cnf.Url.
// URLs starting with sqlite:// open a pure-Go SQLite file; anything else is
// handed to the Postgres driver. Schema migrations run when cnf.Migrate is set.
func NewDBConnection(
	cnf *config.DB,
	appEnv string,
) (*gorm.DB, error) {
	if cnf == nil || cnf.Url == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	var logMode logger.LogLevel
	if appEnv == "development" {
		logMode = logger.Info
	} else {
		logMode = logger.Silent
	}

	dialector, sqliteDB := openDialector(cnf.Url)
	connection, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	if sqliteDB {
		// SQLite allows a single writer; one connection makes writers queue
		// instead of failing with SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cnf.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cnf.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cnf.ConnLifetime)
	}

	if cnf.Migrate {
		if err := migrations.Up(connection); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	return connection, nil
}

func openDialector(url string) (gorm.Dialector, bool) {
	if path, ok := strings.CutPrefix(url, sqliteScheme); ok {
		if !strings.Contains(path, "?") {
			path += "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
		}
		return sqlite.Open(path), true
	}
	return postgres.Open(url), false
}
