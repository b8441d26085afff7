package auth

import (
	"testing"
	"time"
)

func TestTokens_IssueAndVerify(t *testing.T) {
	tokens := NewTokens("test-secret-at-least-16", 7*24*time.Hour)

	signed, err := tokens.Issue("user-1", "joiner@example.com", time.Now())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if signed == "" {
		t.Fatal("Issue() returned empty token")
	}

	claims, err := tokens.Verify(signed)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("Verify() UserID = %v, want user-1", claims.UserID)
	}
	if claims.Email != "joiner@example.com" {
		t.Errorf("Verify() Email = %v, want joiner@example.com", claims.Email)
	}
}

func TestTokens_VerifyExpired(t *testing.T) {
	tokens := NewTokens("test-secret-at-least-16", time.Hour)

	signed, err := tokens.Issue("user-1", "joiner@example.com", time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := tokens.Verify(signed); err != ErrInvalidToken {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestTokens_VerifyWrongSecret(t *testing.T) {
	issuer := NewTokens("test-secret-at-least-16", time.Hour)
	verifier := NewTokens("another-secret-entirely", time.Hour)

	signed, err := issuer.Issue("user-1", "joiner@example.com", time.Now())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := verifier.Verify(signed); err != ErrInvalidToken {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestTokens_VerifyGarbage(t *testing.T) {
	tokens := NewTokens("test-secret-at-least-16", time.Hour)
	if _, err := tokens.Verify("not.a.token"); err != ErrInvalidToken {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple", 4)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Error("HashPassword() returned the plaintext password")
	}
	if !CheckPassword("correct horse battery staple", hash) {
		t.Error("CheckPassword() = false for matching password")
	}
	if CheckPassword("wrong password", hash) {
		t.Error("CheckPassword() = true for non-matching password")
	}
}

func TestNewResetToken(t *testing.T) {
	raw, digest, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken() error = %v", err)
	}
	if len(raw) != 64 {
		t.Errorf("NewResetToken() raw length = %d, want 64", len(raw))
	}
	if digest != HashResetToken(raw) {
		t.Error("NewResetToken() digest does not match HashResetToken(raw)")
	}

	raw2, _, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken() error = %v", err)
	}
	if raw == raw2 {
		t.Error("NewResetToken() returned the same token twice")
	}
}
