package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/otentika/otentika/internal/identity/entity"
	"github.com/otentika/otentika/internal/pkg/goerror"
	"github.com/otentika/otentika/internal/pkg/idempotency"
)

type OTPSendInput struct {
	Email string `validate:"required,email"`
}

type OTPSendOutput struct {
	Message string
}

// OTPSend stores a fresh challenge for the email and delivers the code.
//
// A record is created on the fly when the email is unknown, so OTP login can
// start a registration. An existing challenge is overwritten; when two sends
// race, the stored code is whichever write landed last. A short redis lock
// absorbs accidental double-submits.
func (s *Usecase) OTPSend(ctx context.Context, in OTPSendInput) (*OTPSendOutput, error) {
	ctx, span := s.startSpan(ctx, "OTPSend")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	email := in.Email

	err := s.idemp.Exec(ctx, "otp_send:"+email, func(ctx context.Context) error {
		code, err := s.otp.Generate()
		if err != nil {
			slog.ErrorContext(ctx, "failed to generate otp code", "error", err)
			return goerror.NewServer(err)
		}

		ttl := s.cfg.GetMinute("modules.identity.otp_ttl_minutes")
		userID, err := s.repoDB.UpsertChallenge(ctx, entity.UpsertChallenge{
			NewID:     s.uid.Generate(),
			Email:     email,
			Code:      code,
			ExpiresAt: s.clock.Now().Add(ttl),
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo upsert challenge", "email", email, "error", err)
			return goerror.NewServer(err)
		}

		// Delivery is synchronous so a failed send fails the request. The
		// stored challenge stays behind; it expires on its own.
		if err := s.repoEmail.SendOTP(ctx, email, code, ttl); err != nil {
			slog.ErrorContext(ctx, "failed to send otp email", "user_id", userID, "error", err)
			return goerror.NewBusiness("Failed to send OTP email", goerror.CodeInternal)
		}

		return nil
	}, idempotency.WithLockDuration(s.cfg.GetSecond("modules.identity.otp_send_lock_seconds")),
		idempotency.WithStateTTL(s.cfg.GetSecond("modules.identity.otp_send_lock_seconds")))

	if errors.Is(err, idempotency.ErrAlreadyInProgress) || errors.Is(err, idempotency.ErrAlreadyCompleted) {
		return &OTPSendOutput{Message: "OTP sent to your email"}, nil
	}
	if errors.Is(err, idempotency.ErrAlreadyFailed) {
		return nil, goerror.NewBusiness("Please retry in a moment", goerror.CodeTooManyRequest)
	}
	if err != nil {
		return nil, err
	}

	return &OTPSendOutput{Message: "OTP sent to your email"}, nil
}
