package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/domain"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/ports"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/repository/db"
)

var (
	_ ports.RecordStore  = (*RecordStore)(nil)
	_ ports.RecordWriter = (*txWriter)(nil)
)

// preparedTable holds the dialect-specific statements of one table.
type preparedTable struct {
	table
	upsert string
	owner  string
	count  string
}

// RecordStore persists the eight synchronized tables / Persiste les huit tables synchronisées
type RecordStore struct {
	db      *sql.DB
	dialect db.Dialect
	tables  map[domain.Kind]*preparedTable
}

// NewRecordStore creates record store / Crée le store d'enregistrements
func NewRecordStore(conn *sql.DB, dialect db.Dialect) *RecordStore {
	s := &RecordStore{
		db:      conn,
		dialect: dialect,
		tables:  make(map[domain.Kind]*preparedTable, len(tables)),
	}
	for _, t := range tables {
		s.tables[t.kind] = &preparedTable{
			table:  t,
			upsert: dialect.Rebind(upsertQuery(t) + dialect.UpsertClause(t.mutable)),
			owner:  dialect.Rebind(`SELECT user_id FROM ` + t.name + ` WHERE id = ?`),
			count:  dialect.Rebind(`SELECT COUNT(*) FROM ` + t.name + ` WHERE user_id = ?`),
		}
	}
	return s
}

func upsertQuery(t table) string {
	cols := append([]string{"id", "user_id"}, t.columns...)
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return `INSERT INTO ` + t.name + ` (` + strings.Join(cols, ", ") + `) VALUES (` + marks + `)`
}

// WithinTx runs fn inside one transaction / Exécute fn dans une transaction
func (s *RecordStore) WithinTx(ctx context.Context, fn func(w ports.RecordWriter) error) (err error) {
	tx, err := s.db.BeginTx(ctx, s.dialect.TxOptions())
	if err != nil {
		return fmt.Errorf("begin transaction: %w", s.dialect.TranslateError(err))
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&txWriter{tx: tx, store: s}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			slog.Error("rollback failed", "error", rbErr)
		}
		return err
	}

	// A cancelled context has already rolled the transaction back.
	if err := ctx.Err(); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", s.dialect.TranslateError(err))
	}
	return nil
}

// txWriter upserts records through an open transaction
type txWriter struct {
	tx    *sql.Tx
	store *RecordStore
}

// Upsert inserts or overwrites one record owned by userID / Insère ou met à jour un enregistrement
func (w *txWriter) Upsert(ctx context.Context, kind domain.Kind, userID string, rec domain.Record) (domain.UpsertOutcome, error) {
	t, ok := w.store.tables[kind]
	if !ok {
		return 0, fmt.Errorf("unknown record kind %q", kind)
	}
	id := rec.RecordID()

	outcome := domain.Inserted
	var owner string
	err := w.tx.QueryRowContext(ctx, t.owner, id).Scan(&owner)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return 0, fmt.Errorf("%s %s: %w", t.name, id, w.store.dialect.TranslateError(err))
	case owner != userID:
		return 0, fmt.Errorf("%s %s: %w", t.name, id, db.ErrOwnershipConflict)
	default:
		outcome = domain.Updated
	}

	values, err := t.values(rec)
	if err != nil {
		return 0, err
	}
	args := append([]any{id, userID}, values...)
	if _, err := w.tx.ExecContext(ctx, t.upsert, args...); err != nil {
		return 0, fmt.Errorf("%s %s: %w", t.name, id, w.store.dialect.TranslateError(err))
	}
	return outcome, nil
}

// Count reports per-kind record counts / Compte les enregistrements par type
func (s *RecordStore) Count(ctx context.Context, userID string) (domain.SyncCounts, error) {
	counts := domain.NewSyncCounts()
	for _, kind := range domain.SyncOrder {
		var n int
		if err := s.db.QueryRowContext(ctx, s.tables[kind].count, userID).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", kind, s.dialect.TranslateError(err))
		}
		counts[kind] = n
	}
	return counts, nil
}
