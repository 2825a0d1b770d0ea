package usecase

import (
	"context"
	"testing"

	"github.com/otentika/otentika/internal/identity/entity"
	"github.com/otentika/otentika/internal/pkg/goerror"
	"github.com/otentika/otentika/internal/pkg/hash"
)

func TestLogin(t *testing.T) {
	hashed, err := hash.NewBcrypt(4, "").Hash("Secret123!")
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	registered := entity.User{
		ID:             42,
		Email:          "rina@example.com",
		Phone:          "+628123456789",
		Name:           "Rina Wulandari",
		Role:           entity.RoleUser,
		CredentialHash: string(hashed),
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		f.db.getUserByEmail = func(_ context.Context, email string) (*entity.User, error) {
			if email != "rina@example.com" {
				t.Fatalf("expected normalized email, got %q", email)
			}
			u := registered
			return &u, nil
		}

		// Act
		out, err := uc.Login(context.Background(), LoginInput{Email: " Rina@Example.com ", Password: "Secret123!"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Token == "" {
			t.Fatal("expected token in login output")
		}
		if out.User.ID != registered.ID {
			t.Fatalf("expected user %d, got %d", registered.ID, out.User.ID)
		}
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		f.db.getUserByEmail = func(_ context.Context, _ string) (*entity.User, error) {
			return nil, goerror.ErrNotFound
		}

		// Act
		_, err := uc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "Secret123!"})

		// Assert
		assertBusinessErr(t, err, goerror.CodeUnauthorized, "Incorrect email or password")
	})

	t.Run("WrongPassword", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		f.db.getUserByEmail = func(_ context.Context, _ string) (*entity.User, error) {
			u := registered
			return &u, nil
		}

		// Act
		_, err := uc.Login(context.Background(), LoginInput{Email: "rina@example.com", Password: "wrong-pass"})

		// Assert, same error as unknown email so accounts cannot be probed
		assertBusinessErr(t, err, goerror.CodeUnauthorized, "Incorrect email or password")
	})

	t.Run("PendingRegistrationWithoutPassword", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		f.db.getUserByEmail = func(_ context.Context, _ string) (*entity.User, error) {
			return &entity.User{ID: 43, Email: "pending@example.com"}, nil
		}

		// Act
		_, err := uc.Login(context.Background(), LoginInput{Email: "pending@example.com", Password: "Secret123!"})

		// Assert
		assertBusinessErr(t, err, goerror.CodeUnauthorized, "Incorrect email or password")
	})
}
