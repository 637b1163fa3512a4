package sqlite

import (
	"database/sql"
	"errors"

	"github.com/hypolab/workspace/internal/workspace/store/drivers/sqlite/migrations"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// migrateUp applies the embedded migrations.
func migrateUp(db *sql.DB) error {
	// 1. Database driver over the existing handle
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return err
	}

	// 2. Embedded source
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return err
	}

	// 3. Apply everything pending
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
