package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pasealo/walk-tracking-system/internal/domain/types"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims AccessClaims, secret string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestVerify_ValidToken(t *testing.T) {
	userID := uuid.MustNew()
	signed := signToken(t, AccessClaims{
		Name: "Camila",
		Role: "WALKER",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testSecret)

	session, err := NewVerifier(testSecret).Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if session.UserID != userID {
		t.Fatalf("user id = %s, want %s", session.UserID, userID)
	}
	if session.Role != types.RoleWalker {
		t.Fatalf("role = %s, want WALKER", session.Role)
	}
	if session.Name != "Camila" {
		t.Fatalf("name = %s", session.Name)
	}
}

func TestVerify_Expired(t *testing.T) {
	signed := signToken(t, AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.MustNew().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}, testSecret)

	if _, err := NewVerifier(testSecret).Verify(signed); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("want ErrExpiredToken, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	signed := signToken(t, AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.MustNew().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, "other-secret")

	if _, err := NewVerifier(testSecret).Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestVerify_BadSubject(t *testing.T) {
	signed := signToken(t, AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-uuid",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testSecret)

	if _, err := NewVerifier(testSecret).Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	if _, err := NewVerifier(testSecret).Verify("not.a.token"); err == nil {
		t.Fatal("want error for garbage token")
	}
}
