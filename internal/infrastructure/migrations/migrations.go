// Package migrations provides database migration support for taskboard.
//
// The package embeds the SQL migration files and ships a custom SQLite
// migration driver compatible with ncruces/go-sqlite3 (CGO-free). The stock
// golang-migrate/v4/database/sqlite3 driver cannot be used because it imports
// github.com/mattn/go-sqlite3, which collides with the ncruces driver (both
// register as "sqlite3").
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var embeddedMigrationsFS embed.FS

// MigrationsFS returns the embedded filesystem containing migration SQL
// files, for testing or custom migration scenarios.
func MigrationsFS() fs.FS {
	return embeddedMigrationsFS
}

// RunMigrations applies all pending migrations to the provided database
// using the embedded SQL files and the ncruces-compatible driver.
//
// migrate.ErrNoChange is handled gracefully: a fully migrated database
// returns nil rather than an error.
func RunMigrations(db *sql.DB) error {
	source, err := iofs.New(embeddedMigrationsFS, ".")
	if err != nil {
		return err
	}

	driver, err := WithInstance(db, &Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return err
	}

	return nil
}
