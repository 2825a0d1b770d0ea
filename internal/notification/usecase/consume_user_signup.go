package usecase

import (
	"context"
	"log/slog"

	"github.com/otentika/otentika/internal/pkg/mail"
)

type (
	ConsumeUserSignupInput struct {
		UserID int64  `validate:"required,gt=0"`
		Email  string `validate:"required,email"`
		Name   string `validate:"required,min=2,max=100"`
	}
)

// ConsumeUserSignup sends the welcome email for a freshly created account.
// Malformed payloads are dropped, delivery failures are returned so the
// broker can redeliver.
func (s *Usecase) ConsumeUserSignup(ctx context.Context, in ConsumeUserSignupInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeUserSignup")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	data := s.baseEmailTemplateData()
	data["name"] = in.Name

	subject, err := s.renderTemplate("welcome_subject", welcomeSubject, data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render welcome subject", "user_id", in.UserID, "error", err)
		return nil
	}

	body, err := s.renderTemplate("welcome_body", welcomeBody, data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render welcome body", "user_id", in.UserID, "error", err)
		return nil
	}

	if err := s.repoMail.Send(ctx, mail.Message{
		To:       []string{in.Email},
		Subject:  subject,
		HTMLBody: body,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send welcome email", "user_id", in.UserID, "error", err)
		return err
	}

	return nil
}
