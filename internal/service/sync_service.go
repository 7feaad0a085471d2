package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/config"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/domain"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/ports"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/repository/db"
)

// SyncMetricsRecorder records sync metrics / Enregistre les métriques de synchronisation
type SyncMetricsRecorder interface {
	RecordSyncPush(status string, records int, duration time.Duration)
	RecordSyncRecord(kind, outcome string)
	RecordSyncPull(status string)
}

// SyncService merges device batches into the store and reads them back.
// Fusionne les lots envoyés par l'appareil et les relit.
type SyncService struct {
	store   ports.RecordStore
	conf    *config.Config
	metrics SyncMetricsRecorder
}

// NewSyncService creates sync service instance / Crée une instance de service de synchronisation
func NewSyncService(store ports.RecordStore, conf *config.Config, metrics SyncMetricsRecorder) *SyncService {
	return &SyncService{store: store, conf: conf, metrics: metrics}
}

// SyncAll applies a batch for userID in one transaction and returns the
// number of submitted records per kind.
func (s *SyncService) SyncAll(ctx context.Context, userID string, batch *domain.Batch) (domain.SyncCounts, error) {
	if batch == nil {
		batch = &domain.Batch{}
	}
	if err := s.validate(batch); err != nil {
		return nil, err
	}

	counts := domain.NewSyncCounts()
	for _, kind := range domain.SyncOrder {
		counts[kind] = len(batch.Records(kind))
	}

	if s.conf.Sync.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.conf.Sync.Timeout)
		defer cancel()
	}

	start := time.Now()
	var applied [][2]string
	err := s.store.WithinTx(ctx, func(w ports.RecordWriter) error {
		applied = applied[:0]
		for _, kind := range domain.SyncOrder {
			for _, rec := range batch.Records(kind) {
				outcome, err := w.Upsert(ctx, kind, userID, rec)
				if err != nil {
					return err
				}
				slog.Debug("record synced", "user_id", userID, "kind", kind, "id", rec.RecordID(), "outcome", outcome.String())
				applied = append(applied, [2]string{string(kind), outcome.String()})
			}
		}
		return nil
	})
	if err != nil {
		s.metrics.RecordSyncPush("failure", batch.Size(), time.Since(start))
		slog.Error("sync failed, batch rolled back", "user_id", userID, "records", batch.Size(), "err", err)
		if errors.Is(err, db.ErrOwnershipConflict) {
			return nil, fmt.Errorf("%w: %w", ErrRecordConflict, err)
		}
		return nil, storageError("sync", err)
	}

	for _, a := range applied {
		s.metrics.RecordSyncRecord(a[0], a[1])
	}
	s.metrics.RecordSyncPush("success", batch.Size(), time.Since(start))
	slog.Info("sync completed", "user_id", userID, "records", batch.Size(), "counts", counts)
	return counts, nil
}

// validate runs before any store access / S'exécute avant tout accès au store
func (s *SyncService) validate(batch *domain.Batch) error {
	if limit := s.conf.Sync.MaxRecords; limit > 0 && batch.Size() > limit {
		return newValidationError("batch", fmt.Sprintf("batch holds %d records, limit is %d", batch.Size(), limit))
	}
	for _, kind := range domain.SyncOrder {
		for i, rec := range batch.Records(kind) {
			if strings.TrimSpace(rec.RecordID()) == "" {
				return newValidationError(fmt.Sprintf("%s[%d].id", kind, i), "record id is required")
			}
		}
	}
	return nil
}

// FetchAll returns every record owned by userID / Retourne tous les enregistrements de l'utilisateur
func (s *SyncService) FetchAll(ctx context.Context, userID string) (*domain.Dataset, error) {
	d, err := s.store.FetchAll(ctx, userID)
	if err != nil {
		s.metrics.RecordSyncPull("failure")
		slog.Error("failed to fetch records", "user_id", userID, "err", err)
		return nil, storageError("fetch", err)
	}
	s.metrics.RecordSyncPull("success")
	slog.Info("records fetched", "user_id", userID, "counts", d.Counts())
	return d, nil
}

// Counts reports how many records userID owns per kind / Compte les enregistrements par type
func (s *SyncService) Counts(ctx context.Context, userID string) (domain.SyncCounts, error) {
	counts, err := s.store.Count(ctx, userID)
	if err != nil {
		return nil, storageError("count", err)
	}
	return counts, nil
}
