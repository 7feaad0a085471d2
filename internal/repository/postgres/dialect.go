package postgres

import (
	"database/sql"
	"errors"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/repository/db"
	"github.com/lib/pq"
)

// Dialect is the PostgreSQL flavour of db.Dialect / Variante PostgreSQL de db.Dialect
type Dialect struct{}

func (Dialect) Type() db.DatabaseType { return db.PostgreSQL }

func (Dialect) Rebind(query string) string { return db.RebindDollar(query) }

func (Dialect) UpsertClause(mutable []string) string {
	return db.OnConflictClause(mutable, "EXCLUDED")
}

func (Dialect) TranslateError(err error) error { return handleError(err) }

func (Dialect) TxOptions() *sql.TxOptions {
	return &sql.TxOptions{Isolation: sql.LevelReadCommitted}
}

// handleError translates PostgreSQL errors to typed errors / Traduit les erreurs PostgreSQL en erreurs typées
func handleError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return db.ErrNoRecord
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return db.ErrDup
		case "23503": // foreign_key_violation
			return db.ErrForeignKeyViolation
		case "23502": // not_null_violation
			return db.ErrNotNullViolation
		}
	}
	return err
}
