package dto

import (
	"time"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/domain"
)

// SignupDTOReq is DTO for account creation / Est le DTO pour la création de compte
type SignupDTOReq struct {
	Phone   string `json:"phone"`   // Phone number, unique per account / Numéro unique par compte
	Pin     string `json:"pin"`     // Exactly 4 digits / Exactement 4 chiffres
	Surname string `json:"surname"` // First name (prénom)
	Name    string `json:"name"`    // Family name (nom)
}

// SignupDTOResponse is returned with 201 / Est renvoyé avec 201
type SignupDTOResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// LoginDTOReq is DTO for login requests / Est le DTO pour la connexion
type LoginDTOReq struct {
	Phone string `json:"phone"`
	Pin   string `json:"pin"`
}

// SessionDTO mirrors the session object the mobile client reads the token from.
type SessionDTO struct {
	AccessToken string `json:"access_token"`
}

// LoginDTOResponse is DTO for a successful login / Est le DTO pour une connexion réussie
type LoginDTOResponse struct {
	Message   string            `json:"message"`
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	Session   SessionDTO        `json:"session"`
	User      domain.PublicUser `json:"user"`
}

// LoginToDTO builds the login response / Construit la réponse de connexion
func LoginToDTO(user *domain.User, token string, expiresAt time.Time) *LoginDTOResponse {
	return &LoginDTOResponse{
		Message:   "Login successful",
		Token:     token,
		ExpiresAt: expiresAt,
		Session:   SessionDTO{AccessToken: token},
		User:      user.Public(),
	}
}

// SyncDTOResponse is returned after a push / Est renvoyé après une synchronisation
type SyncDTOResponse struct {
	Message string            `json:"message"`
	Synced  domain.SyncCounts `json:"synced"`
}
