package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/otentika/otentika/internal/identity/entity"
	"github.com/otentika/otentika/internal/pkg/goerror"
	"github.com/otentika/otentika/internal/pkg/otp"
)

type OTPVerifyInput struct {
	Email string `validate:"required,email"`
	OTP   string `validate:"required,len=6,numeric"`
}

type OTPVerifyOutput struct {
	RequiresRegistration bool
	UserID               int64
	Token                string
	User                 entity.User
}

// OTPVerify checks a submitted code against the stored challenge.
//
// A matching code is consumed exactly once: the clear is conditional on the
// stored code still equaling the submitted one, so a concurrent overwrite or a
// duplicate submit loses the race and is rejected. Expired and mismatched
// codes leave the challenge in place.
func (s *Usecase) OTPVerify(ctx context.Context, in OTPVerifyInput) (*OTPVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "OTPVerify")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	email := in.Email
	user, err := s.repoDB.GetUserByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "otp verify for unknown account", "email", email)
		return nil, goerror.NewBusiness("Invalid OTP request", goerror.CodeInvalidInput)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !user.HasActiveChallenge() {
		slog.WarnContext(ctx, "otp verify without outstanding challenge", "user_id", user.ID)
		return nil, goerror.NewBusiness("Invalid OTP request", goerror.CodeInvalidInput)
	}

	if otp.Expired(user.OTPExpiresAt, s.clock.Now()) {
		return nil, goerror.NewBusiness("OTP has expired", goerror.CodeInvalidInput)
	}

	if !otp.Match(in.OTP, user.OTPCode) {
		slog.WarnContext(ctx, "otp verify with mismatched code", "user_id", user.ID)
		return nil, goerror.NewBusiness("Invalid OTP", goerror.CodeInvalidInput)
	}

	consumed, err := s.repoDB.ConsumeChallenge(ctx, user.ID, in.OTP)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo consume challenge", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !consumed {
		// The stored code changed between read and clear; the submitted
		// code no longer wins.
		slog.WarnContext(ctx, "otp challenge lost consumption race", "user_id", user.ID)
		return nil, goerror.NewBusiness("Invalid OTP request", goerror.CodeInvalidInput)
	}

	if !user.IsRegistrationComplete() {
		return &OTPVerifyOutput{RequiresRegistration: true, UserID: user.ID}, nil
	}

	token, err := s.jwt.Generate(user.ID, user.Email, user.Role.String())
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &OTPVerifyOutput{Token: token, User: *user}, nil
}
