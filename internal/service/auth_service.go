package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/config"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/domain"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/ports"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/repository/db"
)

// AuthMetricsRecorder records auth metrics / Enregistre les métriques d'authentification
type AuthMetricsRecorder interface {
	RecordLoginAttempt(status string)
	RecordRegistration()
}

// AuthService handles signup and login / Gère l'inscription et la connexion
type AuthService struct {
	users   ports.UserRepository
	tokens  ports.TokenIssuer
	conf    *config.Config
	metrics AuthMetricsRecorder

	dummyOnce sync.Once
	dummyHash []byte
}

// Session is the result of a successful login / Résultat d'une connexion réussie
type Session struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// NewAuthService creates authentication service instance / Crée une instance de service d'authentification
func NewAuthService(
	users ports.UserRepository,
	tokens ports.TokenIssuer,
	conf *config.Config,
	metrics AuthMetricsRecorder,
) *AuthService {
	return &AuthService{
		users:   users,
		tokens:  tokens,
		conf:    conf,
		metrics: metrics,
	}
}

// Register creates an account and returns its id; it does not log in.
// Crée un compte et retourne son id.
func (s *AuthService) Register(ctx context.Context, phone, pin, surname, name string) (string, error) {
	phone = strings.TrimSpace(phone)
	surname = strings.TrimSpace(surname)
	name = strings.TrimSpace(name)

	if err := requireFields("all fields are required",
		field{"phone", phone}, field{"pin", pin}, field{"surname", surname}, field{"name", name},
	); err != nil {
		return "", err
	}
	if !isValidPIN(pin) {
		return "", newValidationError("pin", "PIN must be exactly 4 digits")
	}

	_, err := s.users.GetByPhone(ctx, phone)
	switch {
	case err == nil:
		return "", ErrPhoneTaken
	case !errors.Is(err, db.ErrNoRecord):
		slog.Error("failed to look up phone during registration", "err", err)
		return "", storageError("lookup phone", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), s.conf.Security.BcryptCost)
	if err != nil {
		slog.Error("failed to hash PIN during registration", "err", err)
		return "", err
	}

	user := &domain.User{
		ID:      uuid.NewString(),
		Phone:   phone,
		PinHash: string(hash),
		Name:    name,
		Surname: surname,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Lost a race against a concurrent signup with the same phone
		if errors.Is(err, db.ErrDup) {
			return "", ErrPhoneTaken
		}
		slog.Error("failed to create user", "err", err)
		return "", storageError("create user", err)
	}

	s.metrics.RecordRegistration()
	slog.Info("account created", "user_id", user.ID, "phone", user.Phone)
	return user.ID, nil
}

// Login checks phone and PIN and issues a session token.
// Vérifie téléphone et PIN puis émet un jeton de session.
func (s *AuthService) Login(ctx context.Context, phone, pin string) (*Session, error) {
	phone = strings.TrimSpace(phone)
	if err := requireFields("phone and PIN are required", field{"phone", phone}, field{"pin", pin}); err != nil {
		return nil, err
	}

	user, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		if !errors.Is(err, db.ErrNoRecord) {
			slog.Error("failed to look up phone during login", "err", err)
			return nil, storageError("lookup phone", err)
		}
		// Same bcrypt cost as a real check so unknown phones are not faster
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(pin))
		s.metrics.RecordLoginAttempt("failure")
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PinHash), []byte(pin)); err != nil {
		s.metrics.RecordLoginAttempt("failure")
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		slog.Error("failed to issue token", "user_id", user.ID, "err", err)
		return nil, err
	}

	s.metrics.RecordLoginAttempt("success")
	slog.Info("login succeeded", "user_id", user.ID, "phone", user.Phone)
	return &Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("0000"), s.conf.Security.BcryptCost)
	})
	return s.dummyHash
}
