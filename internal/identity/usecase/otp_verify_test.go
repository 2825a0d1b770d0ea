package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/otentika/otentika/internal/identity/entity"
	"github.com/otentika/otentika/internal/pkg/goerror"
)

func TestOTPVerify(t *testing.T) {
	challenged := entity.User{
		ID:             42,
		Email:          "rina@example.com",
		Phone:          "+628123456789",
		Name:           "Rina Wulandari",
		Role:           entity.RoleUser,
		CredentialHash: "$2a$04$hash",
		OTPCode:        "123456",
		OTPExpiresAt:   testNow.Add(3 * time.Minute),
	}

	input := OTPVerifyInput{Email: "rina@example.com", OTP: "123456"}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		f.db.getUserByEmail = func(_ context.Context, email string) (*entity.User, error) {
			if email != "rina@example.com" {
				t.Fatalf("expected normalized email, got %q", email)
			}
			u := challenged
			return &u, nil
		}
		f.db.consumeChallenge = func(_ context.Context, userID int64, code string) (bool, error) {
			if userID != challenged.ID || code != "123456" {
				t.Fatalf("unexpected consume args: %d %q", userID, code)
			}
			return true, nil
		}

		// Act, the email is normalized before validation
		out, err := uc.OTPVerify(context.Background(), OTPVerifyInput{Email: " Rina@Example.com ", OTP: "123456"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.RequiresRegistration {
			t.Fatal("expected no registration step for complete profile")
		}
		if out.Token == "" {
			t.Fatal("expected token in verify output")
		}
	})

	t.Run("RequiresRegistration", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		f.db.getUserByEmail = func(_ context.Context, _ string) (*entity.User, error) {
			return &entity.User{
				ID:           43,
				Email:        "new@example.com",
				OTPCode:      "123456",
				OTPExpiresAt: testNow.Add(3 * time.Minute),
			}, nil
		}
		f.db.consumeChallenge = func(_ context.Context, _ int64, _ string) (bool, error) { return true, nil }

		// Act
		out, err := uc.OTPVerify(context.Background(), OTPVerifyInput{Email: "new@example.com", OTP: "123456"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.RequiresRegistration || out.UserID != 43 {
			t.Fatalf("expected registration step for user 43, got %+v", out)
		}
		if out.Token != "" {
			t.Fatal("expected no token before registration completes")
		}
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		f.db.getUserByEmail = func(_ context.Context, _ string) (*entity.User, error) {
			return nil, goerror.ErrNotFound
		}

		// Act
		_, err := uc.OTPVerify(context.Background(), input)

		// Assert
		assertBusinessErr(t, err, goerror.CodeInvalidInput, "Invalid OTP request")
	})

	t.Run("NoOutstandingChallenge", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		f.db.getUserByEmail = func(_ context.Context, _ string) (*entity.User, error) {
			u := challenged
			u.OTPCode = ""
			return &u, nil
		}

		// Act
		_, err := uc.OTPVerify(context.Background(), input)

		// Assert
		assertBusinessErr(t, err, goerror.CodeInvalidInput, "Invalid OTP request")
	})

	t.Run("Expired", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		f.db.getUserByEmail = func(_ context.Context, _ string) (*entity.User, error) {
			u := challenged
			u.OTPExpiresAt = testNow.Add(-time.Second)
			return &u, nil
		}

		// Act
		_, err := uc.OTPVerify(context.Background(), input)

		// Assert
		assertBusinessErr(t, err, goerror.CodeInvalidInput, "OTP has expired")
	})

	t.Run("Mismatch", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		f.db.getUserByEmail = func(_ context.Context, _ string) (*entity.User, error) {
			u := challenged
			return &u, nil
		}

		// Act
		_, err := uc.OTPVerify(context.Background(), OTPVerifyInput{Email: input.Email, OTP: "654321"})

		// Assert
		assertBusinessErr(t, err, goerror.CodeInvalidInput, "Invalid OTP")
	})

	t.Run("LostConsumptionRace", func(t *testing.T) {
		// Arrange, the stored code changed between read and clear
		uc, f := newTestUsecase(t)
		f.db.getUserByEmail = func(_ context.Context, _ string) (*entity.User, error) {
			u := challenged
			return &u, nil
		}
		f.db.consumeChallenge = func(_ context.Context, _ int64, _ string) (bool, error) { return false, nil }

		// Act
		_, err := uc.OTPVerify(context.Background(), input)

		// Assert
		assertBusinessErr(t, err, goerror.CodeInvalidInput, "Invalid OTP request")
	})

	t.Run("MalformedCode", func(t *testing.T) {
		// Arrange
		uc, _ := newTestUsecase(t)

		// Act
		_, err := uc.OTPVerify(context.Background(), OTPVerifyInput{Email: input.Email, OTP: "12ab56"})

		// Assert, rejected before any lookup happens
		var gerr *goerror.Error
		if !errors.As(err, &gerr) || gerr.Type() != goerror.TypeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}
