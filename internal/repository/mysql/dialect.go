package mysql

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/repository/db"
	"github.com/go-sql-driver/mysql"
)

// Dialect is the MySQL flavour of db.Dialect / Variante MySQL de db.Dialect
type Dialect struct{}

func (Dialect) Type() db.DatabaseType { return db.MySQL }

func (Dialect) Rebind(query string) string { return query }

func (Dialect) UpsertClause(mutable []string) string {
	sets := make([]string, 0, len(mutable)+1)
	for _, col := range mutable {
		sets = append(sets, col+" = VALUES("+col+")")
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	return " ON DUPLICATE KEY UPDATE " + strings.Join(sets, ", ")
}

func (Dialect) TranslateError(err error) error { return handleError(err) }

func (Dialect) TxOptions() *sql.TxOptions {
	return &sql.TxOptions{Isolation: sql.LevelReadCommitted}
}

// handleError translates MySQL errors to typed errors / Traduit les erreurs MySQL en erreurs typées
func handleError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return db.ErrNoRecord
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1062: // ER_DUP_ENTRY
			return db.ErrDup
		case 1451, 1452: // ER_ROW_IS_REFERENCED_2, ER_NO_REFERENCED_ROW_2
			return db.ErrForeignKeyViolation
		case 1048: // ER_BAD_NULL_ERROR
			return db.ErrNotNullViolation
		}
	}
	return err
}
