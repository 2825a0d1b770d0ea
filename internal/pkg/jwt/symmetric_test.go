package jwt

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/otentika/otentika/internal/pkg/uid"
)

type stubClock struct{ now time.Time }

func (c stubClock) Now() time.Time { return c.now }

func newSymmetric(t *testing.T, clk clocker) *Symmetric {
	t.Helper()

	s, err := NewHS512(Config{
		Secret:     bytes.Repeat([]byte("k"), 64),
		Issuer:     "otentika",
		Audiences:  []string{"otentika-web"},
		TTLMinutes: time.Hour,
		Clock:      clk,
		UUID:       uid.NewUUID(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return s
}

func TestNewHS512RejectsShortKey(t *testing.T) {
	_, err := NewHS512(Config{Secret: []byte("too short")})
	if !errors.Is(err, ErrSigningKeyTooShort) {
		t.Fatalf("expected ErrSigningKeyTooShort, got %v", err)
	}
}

func TestSymmetricRoundTrip(t *testing.T) {
	// Arrange
	s := newSymmetric(t, stubClock{now: time.Now()})

	// Act
	token, err := s.Generate(42, "rina@example.com", "admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := s.Verify(token)

	// Assert
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 42 || claims.UserEmail != "rina@example.com" || claims.UserRole != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Subject != "42" {
		t.Fatalf("expected subject 42, got %q", claims.Subject)
	}
	if claims.ID == "" {
		t.Fatal("expected a token id")
	}
}

func TestSymmetricVerifyExpired(t *testing.T) {
	// Arrange, issued two hours ago with a one hour ttl
	s := newSymmetric(t, stubClock{now: time.Now().Add(-2 * time.Hour)})

	token, err := s.Generate(42, "rina@example.com", "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Act
	_, err = s.Verify(token)

	// Assert
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestSymmetricVerifyTampered(t *testing.T) {
	// Arrange
	s := newSymmetric(t, stubClock{now: time.Now()})

	token, err := s.Generate(42, "rina@example.com", "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Act
	_, err = s.Verify(token[:len(token)-2] + "xx")

	// Assert
	if err == nil {
		t.Fatal("expected verification failure for tampered token")
	}
}

func TestSymmetricVerifyWrongKey(t *testing.T) {
	// Arrange
	issuer := newSymmetric(t, stubClock{now: time.Now()})

	other, err := NewHS512(Config{
		Secret:     bytes.Repeat([]byte("x"), 64),
		Issuer:     "otentika",
		Audiences:  []string{"otentika-web"},
		TTLMinutes: time.Hour,
		Clock:      stubClock{now: time.Now()},
		UUID:       uid.NewUUID(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := issuer.Generate(42, "rina@example.com", "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Act
	_, err = other.Verify(token)

	// Assert
	if err == nil {
		t.Fatal("expected verification failure with a different key")
	}
}
