package db

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file" // file:// migrations
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/repository/migrations"
)

// MigrationDriver wraps an open pool into a golang-migrate driver / Enveloppe un pool pour golang-migrate
type MigrationDriver struct {
	Name   string
	Create func(*sql.DB) (database.Driver, error)
}

// migrationDrivers maps each engine to its driver (no switch) / Associe chaque moteur à son driver
var migrationDrivers = map[DatabaseType]MigrationDriver{
	SQLite: {
		Name: "sqlite",
		Create: func(db *sql.DB) (database.Driver, error) {
			return sqlite.WithInstance(db, &sqlite.Config{})
		},
	},
	MySQL: {
		Name: "mysql",
		Create: func(db *sql.DB) (database.Driver, error) {
			return mysql.WithInstance(db, &mysql.Config{})
		},
	},
	PostgreSQL: {
		Name: "postgres",
		Create: func(db *sql.DB) (database.Driver, error) {
			return postgres.WithInstance(db, &postgres.Config{})
		},
	},
}

// GetMigrationDriver retrieves migration driver / Récupère le driver de migration
func GetMigrationDriver(dbType DatabaseType) (MigrationDriver, error) {
	d, ok := migrationDrivers[dbType]
	if !ok {
		return MigrationDriver{}, fmt.Errorf("unsupported database type for migrations: %s", dbType)
	}
	return d, nil
}

// Migrate applies pending up migrations. An empty path uses the SQL embedded
// in the binary; otherwise path is read as a file:// source.
// Applique les migrations en attente.
func Migrate(conn *sql.DB, dbType DatabaseType, path string) error {
	driverDef, err := GetMigrationDriver(dbType)
	if err != nil {
		return err
	}

	driver, err := driverDef.Create(conn)
	if err != nil {
		return fmt.Errorf("could not create %s migration driver: %w", dbType, err)
	}

	var m *migrate.Migrate
	if path == "" {
		sub, err := fs.Sub(migrations.FS, string(dbType))
		if err != nil {
			return fmt.Errorf("embedded migrations for %s: %w", dbType, err)
		}
		src, err := iofs.New(sub, ".")
		if err != nil {
			return fmt.Errorf("embedded migrations for %s: %w", dbType, err)
		}
		m, err = migrate.NewWithInstance("iofs", src, driverDef.Name, driver)
		if err != nil {
			return fmt.Errorf("could not create migrate instance: %w", err)
		}
	} else {
		m, err = migrate.NewWithDatabaseInstance("file://"+path, driverDef.Name, driver)
		if err != nil {
			return fmt.Errorf("could not create migrate instance: %w", err)
		}
	}

	slog.Info("applying database migrations", "type", dbType)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations applied")
	return nil
}
