package db

import (
	"database/sql"
	"strconv"
	"strings"
)

// Dialect isolates what differs between SQL engines / Isole ce qui diffère entre moteurs SQL
type Dialect interface {
	Type() DatabaseType

	// Rebind rewrites '?' placeholders into the engine's syntax.
	Rebind(query string) string

	// UpsertClause is appended to an INSERT so an existing id gets the
	// mutable columns overwritten and updated_at refreshed.
	UpsertClause(mutable []string) string

	// TranslateError maps driver errors onto the package sentinels.
	TranslateError(err error) error

	// TxOptions used for write transactions, nil for driver defaults.
	TxOptions() *sql.TxOptions
}

// RebindDollar turns '?' into $1, $2, ... / Transforme '?' en $1, $2, ...
func RebindDollar(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// OnConflictClause builds the ON CONFLICT(id) form shared by SQLite and PostgreSQL.
func OnConflictClause(mutable []string, excluded string) string {
	sets := make([]string, 0, len(mutable)+1)
	for _, col := range mutable {
		sets = append(sets, col+" = "+excluded+"."+col)
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	return " ON CONFLICT(id) DO UPDATE SET " + strings.Join(sets, ", ")
}
