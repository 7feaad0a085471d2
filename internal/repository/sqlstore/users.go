// Package sqlstore implements the storage ports on database/sql, once for
// every engine; engine differences are delegated to a db.Dialect.
package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/domain"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/ports"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/repository/db"
)

var _ ports.UserRepository = (*UserRepository)(nil)

// UserRepository is the credential store / Le magasin d'identifiants
type UserRepository struct {
	db      ports.DBTX
	dialect db.Dialect
}

// NewUserRepository creates user repository / Crée le repository utilisateur
func NewUserRepository(conn ports.DBTX, dialect db.Dialect) *UserRepository {
	return &UserRepository{db: conn, dialect: dialect}
}

// WithTx returns repository bound to a transaction / Retourne le repository lié à une transaction
func (r *UserRepository) WithTx(tx ports.DBTX) *UserRepository {
	return &UserRepository{db: tx, dialect: r.dialect}
}

const userColumns = `id, phone, pin_hash, name, surname, created_at`

// Create inserts new user in database / Insère un nouvel utilisateur dans la BD
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	query := r.dialect.Rebind(`INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Phone, user.PinHash, user.Name, user.Surname, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", r.dialect.TranslateError(err))
	}
	return nil
}

// GetByID retrieves user by ID / Récupère l'utilisateur par ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// GetByPhone retrieves user by phone / Récupère l'utilisateur par téléphone
func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE phone = ?`, phone)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query), arg).Scan(
		&user.ID,
		&user.Phone,
		&user.PinHash,
		&user.Name,
		&user.Surname,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, r.dialect.TranslateError(err)
	}
	return user, nil
}
