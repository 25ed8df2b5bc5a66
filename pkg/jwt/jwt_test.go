package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	m := NewManager("secret", time.Minute, "weg-assembly")
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "chair@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != userID || claims.Email != "chair@example.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestValidateAccessToken_Rejects(t *testing.T) {
	m := NewManager("secret", time.Minute, "weg-assembly")
	userID := uuid.New()

	other, _ := NewManager("other-secret", time.Minute, "weg-assembly").GenerateAccessToken(userID, "a@b.c")
	expired, _ := NewManager("secret", -time.Minute, "weg-assembly").GenerateAccessToken(userID, "a@b.c")
	foreign, _ := NewManager("secret", time.Minute, "someone-else").GenerateAccessToken(userID, "a@b.c")

	tests := map[string]string{
		"wrong secret": other,
		"expired":      expired,
		"wrong issuer": foreign,
		"garbage":      "not-a-token",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := m.ValidateAccessToken(token); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
