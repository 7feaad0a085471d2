package domain

import "time"

// User represents a registered seller account / Représente un compte vendeur inscrit
type User struct {
	ID        string // Client-visible UUID / UUID visible par le client
	Phone     string
	PinHash   string // bcrypt hash, never the raw PIN / Hash bcrypt, jamais le PIN brut
	Name      string
	Surname   string
	CreatedAt time.Time
}

// PublicUser is the part of a user that may leave the server / Partie de l'utilisateur exposable
type PublicUser struct {
	ID      string `json:"id"`
	Phone   string `json:"phone"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// Public strips the PIN hash / Retire le hash du PIN
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:      u.ID,
		Phone:   u.Phone,
		Name:    u.Name,
		Surname: u.Surname,
	}
}
