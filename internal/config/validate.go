package config

import (
	"errors"
	"fmt"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/repository/db"
)

// Validate validates configuration / Valide la configuration
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateAuth(); err != nil {
		return err
	}

	if err := c.validateRateLimiter(); err != nil {
		return err
	}

	if err := c.validateSync(); err != nil {
		return err
	}

	return nil
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	return nil
}

// validateDatabase validates database configuration
func (c *Config) validateDatabase() error {
	if _, ok := db.ParseDatabaseType(c.Database.Type); !ok {
		return errors.New("database.type must be one of: sqlite, mysql, postgres")
	}

	if c.IsProduction() && c.Database.DSN == "" {
		return errors.New("database.dsn is required in production")
	}

	return nil
}

// validateAuth validates authentication and JWT configuration
func (c *Config) validateAuth() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}

	if len(c.Auth.JWTSecret) < 32 {
		return errors.New("auth.jwt_secret must be ≥32 chars")
	}

	if c.IsProduction() && c.Auth.JWTSecret == DefaultJWTSecret {
		return errors.New("auth.jwt_secret cannot use default value in production - set JWT_SECRET environment variable")
	}

	if c.Auth.TokenDuration <= 0 {
		return errors.New("auth.token_duration must be positive")
	}

	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("security.bcrypt_cost must be between 4 and 31, got %d", c.Security.BcryptCost)
	}

	return nil
}

// validateRateLimiter validates rate limiter configuration
func (c *Config) validateRateLimiter() error {
	if !c.RateLimiter.Enabled {
		return nil
	}

	if c.RateLimiter.RPS <= 0 || c.RateLimiter.AuthRPS <= 0 || c.RateLimiter.SyncRPS <= 0 {
		return errors.New("rate_limiter rps values must be positive when enabled")
	}

	if c.RateLimiter.Burst <= 0 || c.RateLimiter.AuthBurst <= 0 || c.RateLimiter.SyncBurst <= 0 {
		return errors.New("rate_limiter burst values must be positive when enabled")
	}

	return nil
}

// validateSync validates push limits
func (c *Config) validateSync() error {
	if c.Sync.Timeout <= 0 {
		return errors.New("sync.timeout must be positive")
	}
	if c.Sync.MaxRecords < 0 || c.Sync.MaxBodyBytes < 0 {
		return errors.New("sync limits cannot be negative")
	}
	return nil
}
