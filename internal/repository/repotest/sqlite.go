// Package repotest provides a real, migrated SQLite database for tests.
package repotest

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/repository/db"
	_ "modernc.org/sqlite" // SQLite driver
)

// NewSQLite opens a temp-file SQLite database with foreign keys enabled and
// the embedded migrations applied. It is closed when the test ends.
// Ouvre une base SQLite temporaire migrée, fermée en fin de test.
func NewSQLite(t testing.TB) *sql.DB {
	t.Helper()

	dsn := db.SQLiteDSN(filepath.Join(t.TempDir(), "test.db"))
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.Migrate(conn, db.SQLite, ""); err != nil {
		t.Fatalf("Failed to migrate sqlite database: %v", err)
	}
	return conn
}

// CreateUser inserts a bare user row so records can reference it.
func CreateUser(t testing.TB, conn *sql.DB, id, phone string) {
	t.Helper()
	_, err := conn.Exec(`INSERT INTO users (id, phone, pin_hash, name, surname) VALUES (?, ?, ?, ?, ?)`,
		id, phone, "$2a$10$test", "Test", "User")
	if err != nil {
		t.Fatalf("Failed to create user %s: %v", id, err)
	}
}
