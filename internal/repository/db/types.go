package db

import "strings"

// DatabaseType represents supported database types
type DatabaseType string

const (
	SQLite     DatabaseType = "sqlite"
	MySQL      DatabaseType = "mysql"
	PostgreSQL DatabaseType = "postgres"
)

// aliases accepted from configuration / Alias acceptés depuis la configuration
var aliases = map[string]DatabaseType{
	"sqlite":     SQLite,
	"sqlite3":    SQLite,
	"mysql":      MySQL,
	"mariadb":    MySQL,
	"postgres":   PostgreSQL,
	"postgresql": PostgreSQL,
	"pg":         PostgreSQL,
}

// ParseDatabaseType normalizes a configured driver name; empty means SQLite.
func ParseDatabaseType(name string) (DatabaseType, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return SQLite, true
	}
	dt, ok := aliases[name]
	return dt, ok
}

// String returns string representation
func (dt DatabaseType) String() string {
	return string(dt)
}
