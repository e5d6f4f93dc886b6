package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"github.com/yatube/yatube/internal/models"
	"github.com/yatube/yatube/pkg/config"
	"github.com/yatube/yatube/pkg/logging"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate brings the schema up to date. Postgres runs the versioned SQL
// migrations; SQLite, used for development and tests, is migrated from
// the models.
func (d *DB) Migrate() error {
	if d.driver != config.DriverPostgres {
		if err := d.AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("error auto-migrating schema: %w", err)
		}
		return nil
	}

	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("error opening migrations: %w", err)
	}

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("error creating postgres driver: %w", err)
	}

	// m.Close would close the shared sql.DB as well, so only the source is closed
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("error creating migration instance: %w", err)
	}
	defer source.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logging.GetLogger().Info("Migration state is up to date")
			return nil
		}
		return fmt.Errorf("error running migrations: %w", err)
	}

	version, _, _ := m.Version()
	logging.GetLogger().Info("Ran migrations successfully", zap.Uint("version", version))
	return nil
}
