package mocks

import (
	"context"
	"sync"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/domain"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/ports"
)

var _ ports.RecordStore = (*MockRecordStore)(nil)

// UpsertCall captures one Upsert invocation
type UpsertCall struct {
	Kind   domain.Kind
	UserID string
	ID     string
}

// MockRecordStore is a mock implementation of ports.RecordStore for testing.
// Upserts are staged per transaction and only become visible in Committed
// when the callback returns nil.
type MockRecordStore struct {
	mu sync.Mutex

	// Committed holds upserts of successful transactions, in order
	Committed []UpsertCall
	// Dataset is returned by FetchAll
	Dataset *domain.Dataset

	// Mock behavior flags
	BeginError  error
	UpsertError error                                   // returned by every Upsert
	FailOn      func(kind domain.Kind, id string) error // per-record failure
	FetchError  error
	CountError  error

	// Call tracking
	TxCalls     int
	RolledBack  int
	UpsertCalls int
	FetchCalls  int
}

// NewMockRecordStore creates a new mock record store
func NewMockRecordStore() *MockRecordStore {
	return &MockRecordStore{Dataset: &domain.Dataset{}}
}

func (m *MockRecordStore) WithinTx(ctx context.Context, fn func(w ports.RecordWriter) error) error {
	m.mu.Lock()
	m.TxCalls++
	if m.BeginError != nil {
		m.mu.Unlock()
		return m.BeginError
	}
	m.mu.Unlock()

	w := &mockWriter{store: m, seen: make(map[string]bool)}
	if err := fn(w); err != nil {
		m.mu.Lock()
		m.RolledBack++
		m.mu.Unlock()
		return err
	}
	if err := ctx.Err(); err != nil {
		m.mu.Lock()
		m.RolledBack++
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	m.Committed = append(m.Committed, w.staged...)
	m.mu.Unlock()
	return nil
}

func (m *MockRecordStore) FetchAll(ctx context.Context, userID string) (*domain.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FetchCalls++
	if m.FetchError != nil {
		return nil, m.FetchError
	}
	return m.Dataset, nil
}

func (m *MockRecordStore) Count(ctx context.Context, userID string) (domain.SyncCounts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CountError != nil {
		return nil, m.CountError
	}
	return m.Dataset.Counts(), nil
}

type mockWriter struct {
	store  *MockRecordStore
	staged []UpsertCall
	seen   map[string]bool
}

func (w *mockWriter) Upsert(ctx context.Context, kind domain.Kind, userID string, rec domain.Record) (domain.UpsertOutcome, error) {
	w.store.mu.Lock()
	w.store.UpsertCalls++
	upsertErr, failOn := w.store.UpsertError, w.store.FailOn
	w.store.mu.Unlock()

	if upsertErr != nil {
		return 0, upsertErr
	}
	if failOn != nil {
		if err := failOn(kind, rec.RecordID()); err != nil {
			return 0, err
		}
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	w.staged = append(w.staged, UpsertCall{Kind: kind, UserID: userID, ID: rec.RecordID()})
	key := string(kind) + "/" + rec.RecordID()
	if w.seen[key] {
		return domain.Updated, nil
	}
	w.seen[key] = true
	return domain.Inserted, nil
}
