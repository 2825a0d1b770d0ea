package usecase

import (
	"context"
	"log/slog"

	"github.com/otentika/otentika/internal/pkg/mail"
)

type (
	ConsumeRegistrationCompletedInput struct {
		UserID int64  `validate:"required,gt=0"`
		Email  string `validate:"required,email"`
		Name   string `validate:"required,min=2,max=100"`
	}
)

// ConsumeRegistrationCompleted confirms by email that an OTP-only account
// finished its profile and now has a password.
func (s *Usecase) ConsumeRegistrationCompleted(ctx context.Context, in ConsumeRegistrationCompletedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeRegistrationCompleted")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	data := s.baseEmailTemplateData()
	data["name"] = in.Name

	subject, err := s.renderTemplate("registration_completed_subject", registrationCompletedSubject, data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render registration completed subject", "user_id", in.UserID, "error", err)
		return nil
	}

	body, err := s.renderTemplate("registration_completed_body", registrationCompletedBody, data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render registration completed body", "user_id", in.UserID, "error", err)
		return nil
	}

	if err := s.repoMail.Send(ctx, mail.Message{
		To:       []string{in.Email},
		Subject:  subject,
		HTMLBody: body,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send registration completed email", "user_id", in.UserID, "error", err)
		return err
	}

	return nil
}
