package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-key-min-32-chars-long-1234567890"

func TestIssuer_IssueAndVerify(t *testing.T) {
	issuer, err := NewIssuer(testSecret, 7*24*time.Hour, "")
	if err != nil {
		t.Fatalf("Failed to create issuer: %v", err)
	}

	token, expiresAt, err := issuer.Issue("4b1c0d5e-user")
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	if token == "" {
		t.Fatal("Token is empty")
	}
	if d := time.Until(expiresAt); d < 7*24*time.Hour-time.Minute || d > 7*24*time.Hour {
		t.Errorf("Expected expiry about 7 days ahead, got %s", d)
	}

	userID, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Failed to verify token: %v", err)
	}
	if userID != "4b1c0d5e-user" {
		t.Errorf("Expected user id '4b1c0d5e-user', got '%s'", userID)
	}

	claims, err := ValidateJWT(token, []byte(testSecret), DefaultIssuer)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}
	if claims.Subject != "4b1c0d5e-user" {
		t.Errorf("Expected subject to carry the user id, got '%s'", claims.Subject)
	}
}

func TestNewIssuer_WeakSecret(t *testing.T) {
	if _, err := NewIssuer("short", time.Hour, ""); !errors.Is(err, ErrWeakKey) {
		t.Errorf("Expected ErrWeakKey, got %v", err)
	}
	if _, err := NewIssuer(testSecret, 0, ""); err == nil {
		t.Error("Expected error for zero duration")
	}
}

func TestIssuer_VerifyRejects(t *testing.T) {
	issuer, _ := NewIssuer(testSecret, time.Hour, "")
	other, _ := NewIssuer("another-secret-key-min-32-chars-long-0987", time.Hour, "")
	foreign, _ := NewIssuer(testSecret, time.Hour, "someone-else")

	expired, _ := NewIssuer(testSecret, time.Hour, "")
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	wrongKey, _, _ := other.Issue("u1")
	wrongIssuer, _, _ := foreign.Issue("u1")
	stale, _, _ := expired.Issue("u1")

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &CustomClaims{UserID: "u1"})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"wrong key", wrongKey},
		{"wrong issuer", wrongIssuer},
		{"expired", stale},
		{"alg none", unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Verify(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
