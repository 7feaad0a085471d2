package mocks

import (
	"sync"
	"time"
)

// MockMetrics is a mock implementation of the service metrics recorders for testing
type MockMetrics struct {
	mu sync.Mutex

	LoginAttempts     map[string]int
	RegistrationCalls int
	SyncPushes        map[string]int
	SyncRecords       map[string]int // "kind/outcome"
	SyncPulls         map[string]int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		LoginAttempts: make(map[string]int),
		SyncPushes:    make(map[string]int),
		SyncRecords:   make(map[string]int),
		SyncPulls:     make(map[string]int),
	}
}

func (m *MockMetrics) RecordLoginAttempt(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoginAttempts[status]++
}

func (m *MockMetrics) RecordRegistration() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegistrationCalls++
}

func (m *MockMetrics) RecordSyncPush(status string, records int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SyncPushes[status]++
}

func (m *MockMetrics) RecordSyncRecord(kind, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SyncRecords[kind+"/"+outcome]++
}

func (m *MockMetrics) RecordSyncPull(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SyncPulls[status]++
}
