package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	sub := uuid.New()

	token, err := NewAccessToken(sub, "voter@example.com", "voter", "secret", time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	claims, err := Parse(token, "secret")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Sub != sub {
		t.Errorf("sub = %s, want %s", claims.Sub, sub)
	}
	if claims.Email != "voter@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
	if claims.Role != "voter" {
		t.Errorf("role = %q", claims.Role)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewAccessToken(uuid.New(), "voter@example.com", "voter", "secret", time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	if _, err := Parse(token, "other-secret"); err == nil {
		t.Fatal("expected a signature error")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := NewAccessToken(uuid.New(), "voter@example.com", "voter", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	if _, err := Parse(token, "secret"); err == nil {
		t.Fatal("expected an expiry error")
	}
}
