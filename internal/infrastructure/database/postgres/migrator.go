package postgres

import (
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // pgx5 database driver
	_ "github.com/golang-migrate/migrate/v4/source/file"     // file source driver

	"github.com/turtacn/SPAC-Sentinel/internal/config"
	"github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

// MigrationURL rewrites the connection URL for golang-migrate's pgx5 driver.
func MigrationURL(cfg config.DatabaseConfig) string {
	return strings.Replace(BuildDSN(cfg), "postgres://", "pgx5://", 1)
}

// RunMigrations applies all pending migrations.  A fully-migrated schema is
// not an error.
func RunMigrations(dbURL, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, dbURL)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create migrate instance")
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		version, _, _ := m.Version()
		return errors.Wrap(err, errors.ErrCodeInternal,
			fmt.Sprintf("failed to run migrations (current version: %d)", version))
	}
	return nil
}

// RollbackMigrations rolls the schema back by the given number of steps.
func RollbackMigrations(dbURL, migrationsPath string, steps int) error {
	if steps <= 0 {
		return errors.NewValidationOp("postgres.rollback",
			fmt.Sprintf("steps must be greater than 0, got %d", steps))
	}

	m, err := migrate.New("file://"+migrationsPath, dbURL)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create migrate instance")
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && err != migrate.ErrNoChange {
		return errors.Wrap(err, errors.ErrCodeInternal,
			fmt.Sprintf("failed to roll back %d step(s)", steps))
	}
	return nil
}

// MigrationStatus reports the applied schema version and whether a previous
// migration left the schema dirty.
func MigrationStatus(dbURL, migrationsPath string) (version uint, dirty bool, err error) {
	m, err := migrate.New("file://"+migrationsPath, dbURL)
	if err != nil {
		return 0, false, errors.Wrap(err, errors.ErrCodeInternal, "failed to create migrate instance")
	}
	defer m.Close()

	version, dirty, err = m.Version()
	if err != nil {
		if err == migrate.ErrNilVersion {
			return 0, false, nil
		}
		return 0, false, errors.Wrap(err, errors.ErrCodeInternal, "failed to get migration version")
	}
	return version, dirty, nil
}
