package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/ridloal/product-service/internal/platform/logger"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const (
	MigrateUp   = "up"
	MigrateDown = "down"
)

// Migrate applies the embedded SQL migrations to a Postgres database.
func Migrate(db *sql.DB, direction string) error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	switch direction {
	case MigrateUp:
		err = m.Up()
	case MigrateDown:
		err = m.Down()
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No change in migration")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate %s failed: %w", direction, err)
	}

	version, dirty, _ := m.Version()
	logger.Info("Migrated "+direction, logger.Fields{"version": version, "dirty": dirty})
	return nil
}
