package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/config"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/domain"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/mocks"
)

func testConfig() *config.Config {
	return &config.Config{
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
		Sync:     config.SyncConfig{MaxRecords: 100},
	}
}

func newAuthService() (*AuthService, *mocks.MockUserRepository, *mocks.MockTokenIssuer, *mocks.MockMetrics) {
	repo := mocks.NewMockUserRepository()
	tokens := mocks.NewMockTokenIssuer()
	m := mocks.NewMockMetrics()
	return NewAuthService(repo, tokens, testConfig(), m), repo, tokens, m
}

func TestAuthService_Register(t *testing.T) {
	svc, repo, _, m := newAuthService()

	id, err := svc.Register(context.Background(), " 770000001 ", "1234", "Awa", "Diop")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	user, ok := repo.Users[id]
	require.True(t, ok)
	assert.Equal(t, "770000001", user.Phone)
	assert.Equal(t, "Awa", user.Surname)
	assert.Equal(t, "Diop", user.Name)
	assert.NotEqual(t, "1234", user.PinHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PinHash), []byte("1234")))
	assert.Equal(t, 1, m.RegistrationCalls)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	tests := []struct {
		name                          string
		phone, pin, surname, lastName string
		field                         string
	}{
		{"missing phone", "", "1234", "Awa", "Diop", "phone"},
		{"blank surname", "770000001", "1234", "  ", "Diop", "surname"},
		{"missing name", "770000001", "1234", "Awa", "", "name"},
		{"missing pin", "770000001", "", "Awa", "Diop", "pin"},
		{"pin too short", "770000001", "123", "Awa", "Diop", "pin"},
		{"pin too long", "770000001", "12345", "Awa", "Diop", "pin"},
		{"pin not digits", "770000001", "12a4", "Awa", "Diop", "pin"},
		{"pin non ascii digits", "770000001", "١٢٣٤", "Awa", "Diop", "pin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, _ := newAuthService()

			_, err := svc.Register(context.Background(), tt.phone, tt.pin, tt.surname, tt.lastName)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.field, vErr.Field)
			assert.Zero(t, repo.GetByPhoneCalls, "validation happens before any store access")
			assert.Zero(t, repo.CreateCalls)
		})
	}
}

func TestAuthService_RegisterDuplicatePhone(t *testing.T) {
	svc, repo, _, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "770000001", "1234", "Awa", "Diop")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "770000001", "9999", "Moussa", "Ndiaye")
	assert.ErrorIs(t, err, ErrPhoneTaken)
	assert.Len(t, repo.Users, 1, "no second account")
}

func TestAuthService_RegisterStorageFailure(t *testing.T) {
	svc, repo, _, _ := newAuthService()
	repo.GetByPhoneError = errors.New("connection refused")

	_, err := svc.Register(context.Background(), "770000001", "1234", "Awa", "Diop")
	assert.ErrorIs(t, err, ErrStorage)
}

func seedUser(t *testing.T, repo *mocks.MockUserRepository, phone, pin string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	require.NoError(t, err)
	u := &domain.User{ID: "u-" + phone, Phone: phone, PinHash: string(hash), Name: "Diop", Surname: "Awa"}
	repo.Users[u.ID] = u
	return u
}

func TestAuthService_Login(t *testing.T) {
	svc, repo, tokens, m := newAuthService()
	seedUser(t, repo, "770000001", "1234")

	session, err := svc.Login(context.Background(), "770000001", "1234")
	require.NoError(t, err)
	assert.Equal(t, "token-u-770000001", session.Token)
	assert.False(t, session.ExpiresAt.IsZero())
	assert.Equal(t, "u-770000001", session.User.ID)
	assert.Equal(t, 1, tokens.IssueCalls)
	assert.Equal(t, 1, m.LoginAttempts["success"])
}

func TestAuthService_LoginFailuresShareMessage(t *testing.T) {
	svc, repo, tokens, m := newAuthService()
	seedUser(t, repo, "770000001", "1234")
	ctx := context.Background()

	_, wrongPIN := svc.Login(ctx, "770000001", "0000")
	_, unknown := svc.Login(ctx, "779999999", "1234")

	assert.ErrorIs(t, wrongPIN, ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, ErrInvalidCredentials)
	assert.Equal(t, wrongPIN.Error(), unknown.Error())
	assert.Zero(t, tokens.IssueCalls)
	assert.Equal(t, 2, m.LoginAttempts["failure"])
}

func TestAuthService_LoginValidation(t *testing.T) {
	svc, repo, _, _ := newAuthService()

	_, err := svc.Login(context.Background(), "", "1234")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Login(context.Background(), "770000001", "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, repo.GetByPhoneCalls)
}

func TestAuthService_LoginStorageFailure(t *testing.T) {
	svc, repo, _, _ := newAuthService()
	repo.GetByPhoneError = errors.New("connection reset")

	_, err := svc.Login(context.Background(), "770000001", "1234")
	assert.ErrorIs(t, err, ErrStorage)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_LoginTokenFailure(t *testing.T) {
	svc, repo, tokens, _ := newAuthService()
	seedUser(t, repo, "770000001", "1234")
	tokens.IssueError = errors.New("signing failed")

	_, err := svc.Login(context.Background(), "770000001", "1234")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
