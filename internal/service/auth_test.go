package service

import (
	"errors"
	"testing"
	"time"
)

func TestAuthService_TokenRoundTrip(t *testing.T) {
	t.Parallel()

	auth, err := NewAuthService("local-key", "signing-secret", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := auth.GenerateToken("local-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a signed token")
	}
	if err := auth.ParseToken(token); err != nil {
		t.Errorf("issued token must verify: %v", err)
	}
}

func TestAuthService_RejectsWrongKey(t *testing.T) {
	t.Parallel()

	auth, err := NewAuthService("local-key", "signing-secret", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := auth.GenerateToken("other-key"); !errors.Is(err, ErrInvalidAccessKey) {
		t.Errorf("expected ErrInvalidAccessKey, got %v", err)
	}
}

func TestAuthService_RejectsForeignToken(t *testing.T) {
	t.Parallel()

	issuer, err := NewAuthService("local-key", "signing-secret", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	verifier, err := NewAuthService("local-key", "different-secret", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := issuer.GenerateToken("local-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := verifier.ParseToken(token); err == nil {
		t.Error("token signed with another secret must not verify")
	}
	if err := verifier.ParseToken("not-a-jwt"); err == nil {
		t.Error("garbage token must not verify")
	}
}

func TestNewAuthService_Validation(t *testing.T) {
	t.Parallel()

	if _, err := NewAuthService("", "secret", time.Hour); err == nil {
		t.Error("empty access key must be rejected")
	}
	if _, err := NewAuthService("key", "  ", time.Hour); err == nil {
		t.Error("blank signing key must be rejected")
	}
}
