package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/ports"
)

var _ ports.TokenIssuer = (*Issuer)(nil)

// DefaultIssuer is used when none is configured / Émetteur par défaut
const DefaultIssuer = "kame-daay"

var (
	ErrWeakKey      = errors.New("JWT key too weak")
	ErrInvalidToken = errors.New("invalid token")
)

// CustomClaims carries the user id the mobile client reads / Porte l'id utilisateur lu par le client mobile
type CustomClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// Issuer signs HS256 session tokens / Signe les jetons de session HS256
type Issuer struct {
	key      []byte
	duration time.Duration
	issuer   string
	now      func() time.Time
}

// NewIssuer creates token issuer / Crée l'émetteur de jetons
func NewIssuer(jwtKey string, duration time.Duration, issuer string) (*Issuer, error) {
	if len(jwtKey) < 32 {
		return nil, ErrWeakKey
	}
	if duration <= 0 {
		return nil, fmt.Errorf("token duration must be positive, got %s", duration)
	}
	if issuer == "" {
		issuer = DefaultIssuer
	}
	return &Issuer{key: []byte(jwtKey), duration: duration, issuer: issuer, now: time.Now}, nil
}

// Issue creates a signed token for userID / Crée un jeton signé pour userID
func (i *Issuer) Issue(userID string) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.duration)
	claims := &CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    i.issuer,
		},
		UserID: userID,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, expiresAt, nil
}

// Verify validates token and returns its user id / Valide le jeton et retourne l'id utilisateur
func (i *Issuer) Verify(tokenStr string) (string, error) {
	claims, err := ValidateJWT(tokenStr, i.key, i.issuer)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// ValidateJWT validates JWT token / Valide le token JWT
func ValidateJWT(tokenStr string, jwtKey []byte, issuer string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing algorithm: %v", token.Header["alg"])
		}
		return jwtKey, nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, jwt.ErrTokenInvalidClaims)
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}
	return claims, nil
}
