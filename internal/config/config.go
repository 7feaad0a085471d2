// Package config provides application configuration management using Viper.
// Values come from a .env file, an optional config.yaml and the environment,
// using the variable names the mobile backend has always used (DB_HOST,
// JWT_SECRET, ALLOWED_ORIGINS, ...).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/repository/db"
)

// DefaultJWTSecret is rejected in production / Refusé en production
const DefaultJWTSecret = "kame-daay-development-secret-change-me"

// DefaultAllowedOrigins covers Expo and local network clients
var DefaultAllowedOrigins = []string{"http://localhost:*", "http://192.168.*.*", "exp://*"}

// Config holds all application configuration / Contient toute la configuration de l'application
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Environment string            `mapstructure:"environment"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Security    SecurityConfig    `mapstructure:"security"`
	Cors        CorsConfig        `mapstructure:"cors"`
	RateLimiter RateLimiterConfig `mapstructure:"rate_limiter"`
	Sync        SyncConfig        `mapstructure:"sync"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// ServerConfig holds server configuration / Configuration serveur
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds database-specific configuration / Configuration de la base de données
type DatabaseConfig struct {
	Type            string        `mapstructure:"type"` // sqlite, mysql or postgres
	DSN             string        `mapstructure:"dsn"`  // built from the fields below when empty
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	MigrationsPath  string        `mapstructure:"migrations_path"` // empty: embedded migrations
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// AuthConfig holds JWT configuration / Configuration JWT
type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	TokenDuration time.Duration `mapstructure:"token_duration"`
	Issuer        string        `mapstructure:"issuer"`
}

// SecurityConfig holds security settings / Paramètres de sécurité
type SecurityConfig struct {
	BcryptCost     int      `mapstructure:"bcrypt_cost"`
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// CorsConfig holds CORS configuration / Configuration CORS
type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"` // '*' matches any run of characters
	AllowUnlisted  bool     `mapstructure:"allow_unlisted"`  // log unlisted origins but let them through
}

// RateLimiterConfig holds rate limiter configuration / Configuration limiteur de débit
type RateLimiterConfig struct {
	RPS       float64 `mapstructure:"rps"`
	Burst     int     `mapstructure:"burst"`
	AuthRPS   float64 `mapstructure:"auth_rps"`
	AuthBurst int     `mapstructure:"auth_burst"`
	SyncRPS   float64 `mapstructure:"sync_rps"`
	SyncBurst int     `mapstructure:"sync_burst"`
	Enabled   bool    `mapstructure:"enabled"`
}

// SyncConfig bounds a push / Limite un envoi
type SyncConfig struct {
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxRecords   int           `mapstructure:"max_records"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

// MetricsConfig holds Prometheus configuration / Configuration Prometheus
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoggingConfig holds logging configuration / Configuration logging
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// IsProduction checks if environment is production / Vérifie si l'environnement est production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// DatabaseType returns the normalized engine / Retourne le moteur normalisé
func (c *Config) DatabaseType() db.DatabaseType {
	t, _ := db.ParseDatabaseType(c.Database.Type)
	return t
}

// envBindings maps config keys to the historical variable names, in priority order
var envBindings = map[string][]string{
	"server.port":          {"PORT"},
	"environment":          {"APP_ENV", "NODE_ENV"},
	"database.type":        {"DB_TYPE"},
	"database.dsn":         {"DATABASE_DSN", "DATABASE_URL"},
	"database.host":        {"DB_HOST"},
	"database.port":        {"DB_PORT"},
	"database.user":        {"DB_USER"},
	"database.password":    {"DB_PASSWORD"},
	"database.name":        {"DB_NAME"},
	"auth.jwt_secret":      {"JWT_SECRET"},
	"auth.token_duration":  {"JWT_EXPIRES_IN"},
	"cors.allowed_origins": {"ALLOWED_ORIGINS"},
	"cors.allow_unlisted":  {"APP_CORS_ALLOW_UNLISTED", "CORS_ALLOW_UNLISTED"},
	"security.bcrypt_cost": {"BCRYPT_COST"},
	"logging.level":        {"LOG_LEVEL"},
	"logging.format":       {"LOG_FORMAT"},
}

// LoadConfig loads configuration from .env, YAML and env vars / Charge la config depuis .env, YAML et variables d'env
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside development
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, names := range envBindings {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3001")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("environment", "development")

	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "")
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "kame_daay")
	v.SetDefault("database.migrations_path", "")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")

	v.SetDefault("auth.jwt_secret", DefaultJWTSecret)
	v.SetDefault("auth.token_duration", "7d")
	v.SetDefault("auth.issuer", "kame-daay")

	v.SetDefault("security.bcrypt_cost", 10)
	v.SetDefault("security.trusted_proxies", []string{}) // don't trust proxy headers unless configured

	v.SetDefault("cors.allowed_origins", DefaultAllowedOrigins)

	v.SetDefault("rate_limiter.enabled", true)
	v.SetDefault("rate_limiter.rps", 20)
	v.SetDefault("rate_limiter.burst", 40)
	v.SetDefault("rate_limiter.auth_rps", 0.5)
	v.SetDefault("rate_limiter.auth_burst", 5)
	v.SetDefault("rate_limiter.sync_rps", 1)
	v.SetDefault("rate_limiter.sync_burst", 10)

	v.SetDefault("sync.timeout", "30s")
	v.SetDefault("sync.max_records", 5000)
	v.SetDefault("sync.max_body_bytes", 10<<20)

	v.SetDefault("metrics.enabled", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// decode unmarshals viper state and fills derived values
func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	err := v.Unmarshal(&cfg, func(c *mapstructure.DecoderConfig) {
		c.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			DaysDurationHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err != nil {
		return nil, err
	}

	cfg.Cors.AllowedOrigins = trimAll(cfg.Cors.AllowedOrigins)
	cfg.Security.TrustedProxies = trimAll(cfg.Security.TrustedProxies)

	// Unlisted origins pass by default everywhere but production
	if !v.IsSet("cors.allow_unlisted") {
		cfg.Cors.AllowUnlisted = !cfg.IsProduction()
	}

	if cfg.Database.DSN == "" {
		dsn, err := BuildDSN(cfg.DatabaseType(), cfg.Database)
		if err != nil {
			return nil, err
		}
		cfg.Database.DSN = dsn
	}
	return &cfg, nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, s := range values {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
