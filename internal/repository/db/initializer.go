package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// DatabaseConfig holds database connection config / Contient la config de connexion BD
type DatabaseConfig struct {
	Type            DatabaseType
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DatabaseInitializer opens and tunes a connection pool / Ouvre et règle un pool de connexions
type DatabaseInitializer interface {
	Initialize(ctx context.Context, config DatabaseConfig) (*sql.DB, error)
	Type() DatabaseType
}

// InitializerRegistry manages database initializers / Gère les initialiseurs de BD
type InitializerRegistry[T DatabaseInitializer] struct {
	factories map[DatabaseType]func() T
}

// NewInitializerRegistry creates registry / Crée le registre
func NewInitializerRegistry[T DatabaseInitializer]() *InitializerRegistry[T] {
	return &InitializerRegistry[T]{
		factories: make(map[DatabaseType]func() T),
	}
}

// Register registers initializer factory / Enregistre une factory d'initialiseur
func (r *InitializerRegistry[T]) Register(dbType DatabaseType, factory func() T) {
	r.factories[dbType] = factory
}

// Get retrieves initializer / Récupère l'initialiseur
func (r *InitializerRegistry[T]) Get(dbType DatabaseType, fallback func() T) T {
	if factory, exists := r.factories[dbType]; exists {
		return factory()
	}
	return fallback()
}

var initializerRegistry = func() *InitializerRegistry[DatabaseInitializer] {
	registry := NewInitializerRegistry[DatabaseInitializer]()
	registry.Register(MySQL, func() DatabaseInitializer {
		return &poolInitializer{dbType: MySQL, driver: "mysql"}
	})
	registry.Register(PostgreSQL, func() DatabaseInitializer {
		return &poolInitializer{dbType: PostgreSQL, driver: "postgres"}
	})
	registry.Register(SQLite, func() DatabaseInitializer {
		return &poolInitializer{dbType: SQLite, driver: "sqlite", prepareDSN: SQLiteDSN}
	})
	return registry
}()

// NewDatabaseInitializer creates initializer for database type / Crée l'initialiseur pour le type de BD
func NewDatabaseInitializer(dbType DatabaseType) DatabaseInitializer {
	return initializerRegistry.Get(dbType, func() DatabaseInitializer {
		return &poolInitializer{dbType: SQLite, driver: "sqlite", prepareDSN: SQLiteDSN}
	})
}

// poolInitializer opens a database/sql pool for one driver
type poolInitializer struct {
	dbType     DatabaseType
	driver     string
	prepareDSN func(string) string
}

func (i *poolInitializer) Initialize(ctx context.Context, config DatabaseConfig) (*sql.DB, error) {
	dsn := config.DSN
	if i.prepareDSN != nil {
		dsn = i.prepareDSN(dsn)
	}

	db, err := sql.Open(i.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", i.dbType, err)
	}
	i.setConnectionPool(db, config)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", i.dbType, err)
	}

	slog.Info("database connected", "type", i.dbType)
	return db, nil
}

func (i *poolInitializer) Type() DatabaseType {
	return i.dbType
}

func (i *poolInitializer) setConnectionPool(db *sql.DB, config DatabaseConfig) {
	maxOpen := config.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 25
	}
	maxIdle := config.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 5
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	if config.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(config.ConnMaxLifetime)
	}
}

// sqlitePragmas are applied on every pooled connection through the DSN.
var sqlitePragmas = []string{
	"foreign_keys(1)",
	"busy_timeout(5000)",
	"journal_mode(WAL)",
	"synchronous(NORMAL)",
}

// SQLiteDSN appends the connection pragmas unless the DSN already sets some.
// Les pragmas sont ajoutés sauf si le DSN en définit déjà.
func SQLiteDSN(dsn string) string {
	if dsn == "" {
		dsn = "kamedaay.db"
	}
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	params := make([]string, 0, len(sqlitePragmas)+1)
	for _, p := range sqlitePragmas {
		params = append(params, "_pragma="+p)
	}
	params = append(params, "_txlock=immediate")

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}
