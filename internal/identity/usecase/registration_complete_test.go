package usecase

import (
	"context"
	"testing"

	"github.com/otentika/otentika/internal/identity/entity"
	"github.com/otentika/otentika/internal/pkg/goerror"
)

func TestRegistrationComplete(t *testing.T) {
	input := RegistrationCompleteInput{
		UserID:   43,
		Name:     "Rina Wulandari",
		Phone:    "+628123456789",
		Password: "Secret123!",
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)

		pending := entity.User{ID: 43, Email: "new@example.com", Role: entity.RoleUser}
		var completed entity.CompleteRegistration
		calls := 0
		f.db.getUserByID = func(_ context.Context, _ int64) (*entity.User, error) {
			calls++
			u := pending
			if calls > 1 {
				u.Name = completed.Name
				u.Phone = completed.Phone
				u.CredentialHash = completed.CredentialHash
			}
			return &u, nil
		}
		f.db.completeRegistration = func(_ context.Context, in entity.CompleteRegistration) error {
			completed = in
			return nil
		}

		// Act
		out, err := uc.RegistrationComplete(context.Background(), input)

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Token == "" {
			t.Fatal("expected token in completion output")
		}
		if completed.CredentialHash == "" || completed.CredentialHash == input.Password {
			t.Fatal("expected hashed credential, not plaintext")
		}
		if !out.User.IsRegistrationComplete() {
			t.Fatal("expected returned user to be fully registered")
		}

		if err := f.g.Wait(); err != nil {
			t.Fatalf("goroutines: %v", err)
		}
		if len(f.msg.completions) != 1 || f.msg.completions[0].UserID != 43 {
			t.Fatalf("expected one completion event, got %+v", f.msg.completions)
		}
	})

	t.Run("UserNotFound", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		f.db.getUserByID = func(_ context.Context, _ int64) (*entity.User, error) {
			return nil, goerror.ErrNotFound
		}

		// Act
		_, err := uc.RegistrationComplete(context.Background(), input)

		// Assert
		assertBusinessErr(t, err, goerror.CodeNotFound, "User not found")
	})

	t.Run("AlreadyCompleted", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		f.db.getUserByID = func(_ context.Context, _ int64) (*entity.User, error) {
			return &entity.User{
				ID:             43,
				Email:          "done@example.com",
				Phone:          "+628123456789",
				Name:           "Rina Wulandari",
				CredentialHash: "$2a$04$hash",
			}, nil
		}

		// Act
		_, err := uc.RegistrationComplete(context.Background(), input)

		// Assert
		assertBusinessErr(t, err, goerror.CodeConflict, "Registration already completed")
	})

	t.Run("PhoneTaken", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		f.db.getUserByID = func(_ context.Context, _ int64) (*entity.User, error) {
			return &entity.User{ID: 43, Email: "new@example.com"}, nil
		}
		f.db.completeRegistration = func(_ context.Context, _ entity.CompleteRegistration) error {
			return goerror.ErrConflict
		}

		// Act
		_, err := uc.RegistrationComplete(context.Background(), input)

		// Assert
		assertBusinessErr(t, err, goerror.CodeConflict, "Phone already registered")
	})
}
