package ports

import (
	"context"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/domain"
)

// RecordWriter merges records inside an open transaction / Fusionne des enregistrements dans une transaction
type RecordWriter interface {
	// Upsert inserts the record or overwrites its mutable fields, always owned by userID.
	Upsert(ctx context.Context, kind domain.Kind, userID string, rec domain.Record) (domain.UpsertOutcome, error)
}

// RecordStore holds the eight synchronized tables / Contient les huit tables synchronisées
type RecordStore interface {
	// WithinTx runs fn in one transaction: committed when fn returns nil,
	// rolled back on error, panic or context cancellation.
	WithinTx(ctx context.Context, fn func(w RecordWriter) error) error

	// FetchAll reads every record owned by userID / Lit tous les enregistrements de l'utilisateur
	FetchAll(ctx context.Context, userID string) (*domain.Dataset, error)

	// Count reports per-kind record counts for userID / Compte les enregistrements par type
	Count(ctx context.Context, userID string) (domain.SyncCounts, error)
}
