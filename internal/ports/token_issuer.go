package ports

import "time"

// TokenIssuer signs and verifies session tokens / Signe et vérifie les jetons de session
type TokenIssuer interface {
	// Issue returns a signed token for userID and its expiry.
	Issue(userID string) (string, time.Time, error)

	// Verify returns the user ID bound to a valid token.
	Verify(token string) (string, error)
}
