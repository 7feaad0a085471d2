package sqlite

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/repository/db"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrBusy   = errors.New("database is busy")   // Database busy / Base de données occupée
	ErrLocked = errors.New("database is locked") // Database locked / Base de données verrouillée
)

// Dialect is the SQLite flavour of db.Dialect / Variante SQLite de db.Dialect
type Dialect struct{}

func (Dialect) Type() db.DatabaseType { return db.SQLite }

func (Dialect) Rebind(query string) string { return query }

func (Dialect) UpsertClause(mutable []string) string {
	return db.OnConflictClause(mutable, "excluded")
}

func (Dialect) TranslateError(err error) error { return handleError(err) }

// TxOptions is nil: SQLite serializes writers on its own.
func (Dialect) TxOptions() *sql.TxOptions { return nil }

// handleError translates DB errors to typed errors / Traduit les erreurs DB en erreurs typées
func handleError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return db.ErrNoRecord
	}
	var liteErr *sqlite.Error
	if !errors.As(err, &liteErr) {
		return err
	}
	switch code := liteErr.Code(); code {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return db.ErrDup
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return db.ErrForeignKeyViolation
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return db.ErrNotNullViolation
	case sqlite3.SQLITE_BUSY:
		slog.Warn("database is busy", "error", liteErr.Error())
		return ErrBusy
	case sqlite3.SQLITE_LOCKED:
		slog.Warn("database is locked", "error", liteErr.Error())
		return ErrLocked
	default:
		slog.Debug("sqlite error", "code", code, "error", liteErr.Error())
	}
	return err
}
