package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/coursehub/elearning-service/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", "elearning-service", time.Minute)

	token, err := issuer.Issue(7, models.RoleStudent)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}

	if claims.UserID != 7 || claims.Role != models.RoleStudent {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Issuer != "elearning-service" {
		t.Fatalf("unexpected issuer %q", claims.Issuer)
	}
}

func TestTokenExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", "elearning-service", -time.Minute)

	token, err := issuer.Issue(7, models.RoleStudent)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	if _, err := issuer.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret", "elearning-service", time.Minute)
	other := NewTokenIssuer("other-secret", "elearning-service", time.Minute)

	token, err := issuer.Issue(2, models.RoleInstructor)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	if _, err := other.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenMalformed(t *testing.T) {
	issuer := NewTokenIssuer("secret", "elearning-service", time.Minute)

	if _, err := issuer.Verify("not-a-token"); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if err := CheckPassword(hash, "secret"); err != nil {
		t.Fatalf("expected password to match")
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatalf("expected password mismatch")
	}
}
