package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/lib/pq"              // PostgreSQL driver
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/config"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/metrics"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/ports"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/repository"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/repository/db"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/service"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/service/auth"
)

const (
	connectTimeout   = 10 * time.Second
	poolStatsRefresh = 30 * time.Second
)

// Container holds application dependencies / Contient les dépendances de l'application
type Container struct {
	DB          *sql.DB
	Config      *config.Config
	UserRepo    ports.UserRepository
	RecordStore ports.RecordStore
	Tokens      ports.TokenIssuer
	AuthSvc     *service.AuthService
	SyncSvc     *service.SyncService
	Metrics     *metrics.Metrics
	Registry    *prometheus.Registry
	ctxCancel   context.CancelFunc
}

// NewContainer initializes application container / Initialise le conteneur de l'application
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	// Private registry so that several containers can coexist (tests)
	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.Metrics = metrics.NewMetrics(c.Registry)

	if err := c.initDatabase(); err != nil {
		return nil, fmt.Errorf("database init: %w", err)
	}

	if err := c.runMigrations(); err != nil {
		c.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	c.initRepositories()

	if err := c.initServices(); err != nil {
		c.Close()
		return nil, fmt.Errorf("service init: %w", err)
	}

	c.startPoolStats()
	return c, nil
}

// initDatabase initializes database connection / Initialise la connexion à la base de données
func (c *Container) initDatabase() error {
	dbType := c.Config.DatabaseType()

	dbConfig := db.DatabaseConfig{
		Type:            dbType,
		DSN:             c.Config.Database.DSN,
		MaxOpenConns:    c.Config.Database.MaxOpenConns,
		MaxIdleConns:    c.Config.Database.MaxIdleConns,
		ConnMaxLifetime: c.Config.Database.ConnMaxLifetime,
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	conn, err := db.NewDatabaseInitializer(dbType).Initialize(ctx, dbConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize %s database: %w", dbType, err)
	}

	c.DB = conn
	return nil
}

// runMigrations applies database migrations / Applique les migrations de base de données
func (c *Container) runMigrations() error {
	dbType := c.Config.DatabaseType()
	source := c.Config.Database.MigrationsPath
	if source == "" {
		source = "embedded"
	}

	slog.Info("applying database migrations", "type", dbType, "source", source)
	if err := db.Migrate(c.DB, dbType, c.Config.Database.MigrationsPath); err != nil {
		return err
	}
	slog.Info("database migrations applied")
	return nil
}

// initRepositories initializes repositories / Initialise les repositories
func (c *Container) initRepositories() {
	adapter := repository.NewAdapter(c.DB, c.Config.DatabaseType())

	c.UserRepo = adapter.UserRepository()
	c.RecordStore = adapter.RecordStore()

	slog.Info("repositories initialized", "type", c.Config.DatabaseType())
}

// initServices initializes application services / Initialise les services applicatifs
func (c *Container) initServices() error {
	issuer, err := auth.NewIssuer(c.Config.Auth.JWTSecret, c.Config.Auth.TokenDuration, c.Config.Auth.Issuer)
	if err != nil {
		return fmt.Errorf("failed to initialize token issuer: %w", err)
	}
	c.Tokens = issuer

	c.AuthSvc = service.NewAuthService(c.UserRepo, c.Tokens, c.Config, c.Metrics)
	c.SyncSvc = service.NewSyncService(c.RecordStore, c.Config, c.Metrics)
	return nil
}

// startPoolStats keeps the connection gauge current until Close
// Met à jour la jauge de connexions jusqu'à Close
func (c *Container) startPoolStats() {
	ctx, cancel := context.WithCancel(context.Background())
	c.ctxCancel = cancel

	c.updateDatabaseMetrics()
	go func() {
		ticker := time.NewTicker(poolStatsRefresh)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.updateDatabaseMetrics()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// updateDatabaseMetrics updates database metrics / Met à jour les métriques de la BD
func (c *Container) updateDatabaseMetrics() {
	stats := c.DB.Stats()
	c.Metrics.UpdateDatabaseConnections(stats.OpenConnections)
}

// Close performs graceful shutdown / Effectue un arrêt gracieux
func (c *Container) Close() error {
	if c.ctxCancel != nil {
		c.ctxCancel()
	}
	if c.DB != nil {
		slog.Info("closing database")
		return c.DB.Close()
	}
	return nil
}
