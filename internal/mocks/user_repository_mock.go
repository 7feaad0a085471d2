package mocks

import (
	"context"
	"sync"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/domain"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/ports"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/repository/db"
)

var _ ports.UserRepository = (*MockUserRepository)(nil)

// MockUserRepository is a mock implementation of ports.UserRepository for testing
type MockUserRepository struct {
	mu sync.Mutex

	// Mock data storage, keyed by user id
	Users map[string]*domain.User

	// Mock behavior flags
	CreateError     error
	GetByIDError    error
	GetByPhoneError error

	// Call tracking
	CreateCalls     int
	GetByIDCalls    int
	GetByPhoneCalls int
}

// NewMockUserRepository creates a new mock user repository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls++
	if m.CreateError != nil {
		return m.CreateError
	}
	for _, u := range m.Users {
		if u.Phone == user.Phone {
			return db.ErrDup
		}
	}
	copied := *user
	m.Users[user.ID] = &copied
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetByIDCalls++
	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}
	user, ok := m.Users[id]
	if !ok {
		return nil, db.ErrNoRecord
	}
	return user, nil
}

func (m *MockUserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetByPhoneCalls++
	if m.GetByPhoneError != nil {
		return nil, m.GetByPhoneError
	}
	for _, u := range m.Users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, db.ErrNoRecord
}
