package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/otentika/otentika/internal/identity/entity"
	"github.com/otentika/otentika/internal/pkg/goerror"
	"github.com/otentika/otentika/internal/pkg/idempotency"
)

func TestOTPSend(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)

		var stored entity.UpsertChallenge
		f.db.upsertChallenge = func(_ context.Context, in entity.UpsertChallenge) (int64, error) {
			stored = in
			return 42, nil
		}

		// Act
		out, err := uc.OTPSend(context.Background(), OTPSendInput{Email: " Rina@Example.com "})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Message != "OTP sent to your email" {
			t.Fatalf("unexpected message %q", out.Message)
		}
		if stored.Email != "rina@example.com" {
			t.Fatalf("expected normalized email, got %q", stored.Email)
		}
		if stored.Code != "123456" {
			t.Fatalf("expected generated code stored, got %q", stored.Code)
		}
		if want := testNow.Add(5 * time.Minute); !stored.ExpiresAt.Equal(want) {
			t.Fatalf("expected expiry %v, got %v", want, stored.ExpiresAt)
		}
		if len(f.email.sent) != 1 || f.email.sent[0].Code != "123456" {
			t.Fatalf("expected one delivered code, got %+v", f.email.sent)
		}
	})

	t.Run("DeliveryFailure", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		f.db.upsertChallenge = func(_ context.Context, _ entity.UpsertChallenge) (int64, error) { return 42, nil }
		f.email.err = errors.New("smtp connection refused")

		// Act
		_, err := uc.OTPSend(context.Background(), OTPSendInput{Email: "rina@example.com"})

		// Assert
		assertBusinessErr(t, err, goerror.CodeInternal, "Failed to send OTP email")
	})

	t.Run("AlreadyInProgress", func(t *testing.T) {
		// Arrange
		uc, _ := newTestUsecase(t)
		uc.idemp = passthroughIdemp{execErr: idempotency.ErrAlreadyInProgress}

		// Act
		out, err := uc.OTPSend(context.Background(), OTPSendInput{Email: "rina@example.com"})

		// Assert, a duplicate submit gets the same success message
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Message != "OTP sent to your email" {
			t.Fatalf("unexpected message %q", out.Message)
		}
	})

	t.Run("RecentFailure", func(t *testing.T) {
		// Arrange
		uc, _ := newTestUsecase(t)
		uc.idemp = passthroughIdemp{execErr: idempotency.ErrAlreadyFailed}

		// Act
		_, err := uc.OTPSend(context.Background(), OTPSendInput{Email: "rina@example.com"})

		// Assert
		assertBusinessErr(t, err, goerror.CodeTooManyRequest, "Please retry in a moment")
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		// Arrange
		uc, _ := newTestUsecase(t)

		// Act
		_, err := uc.OTPSend(context.Background(), OTPSendInput{Email: "nope"})

		// Assert
		var gerr *goerror.Error
		if !errors.As(err, &gerr) || gerr.Type() != goerror.TypeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}
