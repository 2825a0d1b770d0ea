package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/otentika/otentika/internal/identity/entity"
	"github.com/otentika/otentika/internal/pkg/goerror"
)

func TestSignup(t *testing.T) {
	validInput := SignupInput{
		Name:     "Rina Wulandari",
		Email:    "Rina@Example.com",
		Phone:    "+628123456789",
		Password: "Secret123!",
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)

		var created entity.NewUser
		f.db.existsByEmailOrPhone = func(_ context.Context, _, _ string) (bool, error) { return false, nil }
		f.db.createUser = func(_ context.Context, in entity.NewUser) error {
			created = in
			return nil
		}
		f.db.getUserByID = func(_ context.Context, id int64) (*entity.User, error) {
			return &entity.User{
				ID:             id,
				Email:          "rina@example.com",
				Phone:          created.Phone,
				Name:           created.Name,
				Role:           created.Role,
				CredentialHash: created.CredentialHash,
			}, nil
		}

		// Act
		out, err := uc.Signup(context.Background(), validInput)

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Token == "" {
			t.Fatal("expected token in signup output")
		}
		if created.Email != "rina@example.com" {
			t.Fatalf("expected lowercased email, got %q", created.Email)
		}
		if created.Role != entity.RoleUser {
			t.Fatalf("expected default role user, got %v", created.Role)
		}
		if created.CredentialHash == "" || created.CredentialHash == validInput.Password {
			t.Fatal("expected hashed credential, not plaintext")
		}

		if err := f.g.Wait(); err != nil {
			t.Fatalf("goroutines: %v", err)
		}
		if len(f.msg.signups) != 1 || f.msg.signups[0].Email != "rina@example.com" {
			t.Fatalf("expected one signup event, got %+v", f.msg.signups)
		}
	})

	t.Run("DuplicateEmailOrPhone", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		f.db.existsByEmailOrPhone = func(_ context.Context, _, _ string) (bool, error) { return true, nil }

		// Act
		_, err := uc.Signup(context.Background(), validInput)

		// Assert
		assertBusinessErr(t, err, goerror.CodeConflict, "Email or phone already registered")
	})

	t.Run("AdminRoleWithoutAdminCaller", func(t *testing.T) {
		// Arrange
		uc, _ := newTestUsecase(t)
		in := validInput
		in.Role = "admin"

		// Act
		_, err := uc.Signup(context.Background(), in)

		// Assert
		assertBusinessErr(t, err, goerror.CodeForbidden, "Not authorized to assign role")
	})

	t.Run("AdminRoleWithAdminCaller", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)

		var created entity.NewUser
		f.db.existsByEmailOrPhone = func(_ context.Context, _, _ string) (bool, error) { return false, nil }
		f.db.createUser = func(_ context.Context, in entity.NewUser) error {
			created = in
			return nil
		}
		f.db.getUserByID = func(_ context.Context, id int64) (*entity.User, error) {
			return &entity.User{ID: id, Email: created.Email, Role: created.Role}, nil
		}

		in := validInput
		in.Role = "admin"

		// Act
		_, err := uc.Signup(authCtx("admin", 1), in)

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.Role != entity.RoleAdmin {
			t.Fatalf("expected admin role, got %v", created.Role)
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		// Arrange
		uc, _ := newTestUsecase(t)
		in := validInput
		in.Email = "not-an-email"

		// Act
		_, err := uc.Signup(context.Background(), in)

		// Assert
		var gerr *goerror.Error
		if !errors.As(err, &gerr) || gerr.Type() != goerror.TypeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}
