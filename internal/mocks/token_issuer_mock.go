package mocks

import (
	"errors"
	"strings"
	"time"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/ports"
)

var _ ports.TokenIssuer = (*MockTokenIssuer)(nil)

var ErrMockTokenInvalid = errors.New("token invalid")

// MockTokenIssuer issues "token-<userID>" strings for testing
type MockTokenIssuer struct {
	IssueError error
	TTL        time.Duration

	IssueCalls  int
	VerifyCalls int
}

func NewMockTokenIssuer() *MockTokenIssuer {
	return &MockTokenIssuer{TTL: 7 * 24 * time.Hour}
}

func (m *MockTokenIssuer) Issue(userID string) (string, time.Time, error) {
	m.IssueCalls++
	if m.IssueError != nil {
		return "", time.Time{}, m.IssueError
	}
	return "token-" + userID, time.Now().Add(m.TTL), nil
}

func (m *MockTokenIssuer) Verify(token string) (string, error) {
	m.VerifyCalls++
	userID, ok := strings.CutPrefix(token, "token-")
	if !ok || userID == "" {
		return "", ErrMockTokenInvalid
	}
	return userID, nil
}
