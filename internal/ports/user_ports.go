package ports

import (
	"context"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/domain"
)

// UserReader reads user data / Lit les données utilisateur
type UserReader interface {
	// GetByID retrieves user by unique ID / Récupère l'utilisateur par ID unique
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByPhone retrieves user by phone number / Récupère l'utilisateur par téléphone
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
}

// UserWriter creates users / Crée les utilisateurs
type UserWriter interface {
	// Create inserts new user; duplicate phone yields db.ErrDup / Insère un utilisateur
	Create(ctx context.Context, user *domain.User) error
}

// UserRepository is the credential store / Le magasin d'identifiants
type UserRepository interface {
	UserReader
	UserWriter
}
