package usecase

import (
	"context"
	"testing"

	"github.com/otentika/otentika/internal/identity/entity"
	"github.com/otentika/otentika/internal/pkg/goerror"
)

func TestUserUpdate(t *testing.T) {
	existing := entity.User{
		ID:    42,
		Email: "rina@example.com",
		Phone: "+628123456789",
		Name:  "Rina Wulandari",
		Role:  entity.RoleUser,
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)

		var patched entity.PatchUser
		f.db.getUserByID = func(_ context.Context, _ int64) (*entity.User, error) {
			u := existing
			if patched.Name != "" {
				u.Name = patched.Name
			}
			return &u, nil
		}
		f.db.patchUser = func(_ context.Context, in entity.PatchUser) error {
			patched = in
			return nil
		}

		// Act
		out, err := uc.UserUpdate(authCtx("user", 42), UserUpdateInput{ID: 42, Name: "Rina W Sari"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if patched.Role != entity.RoleUnknown {
			t.Fatalf("expected role left unchanged, got %v", patched.Role)
		}
		if out.User.Name != "Rina W Sari" {
			t.Fatalf("expected updated name, got %q", out.User.Name)
		}
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		// Arrange
		uc, _ := newTestUsecase(t)

		// Act
		_, err := uc.UserUpdate(context.Background(), UserUpdateInput{ID: 42, Name: "Rina W Sari"})

		// Assert
		assertBusinessErr(t, err, goerror.CodeUnauthorized, "Authentication required")
	})

	t.Run("RoleChangeByNonAdmin", func(t *testing.T) {
		// Arrange
		uc, _ := newTestUsecase(t)

		// Act
		_, err := uc.UserUpdate(authCtx("user", 42), UserUpdateInput{ID: 42, Role: "admin"})

		// Assert
		assertBusinessErr(t, err, goerror.CodeForbidden, "Not authorized to update role")
	})

	t.Run("RoleChangeByAdmin", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)

		var patched entity.PatchUser
		f.db.getUserByID = func(_ context.Context, _ int64) (*entity.User, error) {
			u := existing
			return &u, nil
		}
		f.db.patchUser = func(_ context.Context, in entity.PatchUser) error {
			patched = in
			return nil
		}

		// Act
		_, err := uc.UserUpdate(authCtx("admin", 1), UserUpdateInput{ID: 42, Role: "admin"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if patched.Role != entity.RoleAdmin {
			t.Fatalf("expected admin role in patch, got %v", patched.Role)
		}
	})

	t.Run("EmailTaken", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		f.db.getUserByID = func(_ context.Context, _ int64) (*entity.User, error) {
			u := existing
			return &u, nil
		}
		f.db.patchUser = func(_ context.Context, _ entity.PatchUser) error {
			return goerror.ErrConflict
		}

		// Act
		_, err := uc.UserUpdate(authCtx("user", 42), UserUpdateInput{ID: 42, Email: "taken@example.com"})

		// Assert
		assertBusinessErr(t, err, goerror.CodeConflict, "Email or phone already registered")
	})

	t.Run("NotFound", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		f.db.getUserByID = func(_ context.Context, _ int64) (*entity.User, error) {
			return nil, goerror.ErrNotFound
		}

		// Act
		_, err := uc.UserUpdate(authCtx("user", 42), UserUpdateInput{ID: 99, Name: "Rina W Sari"})

		// Assert
		assertBusinessErr(t, err, goerror.CodeNotFound, "User not found")
	})
}
