package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/otentika/otentika/internal/identity/entity"
	"github.com/otentika/otentika/internal/pkg/goerror"
	"github.com/otentika/otentika/internal/shared/event"
)

type RegistrationCompleteInput struct {
	UserID   int64  `validate:"required"`
	Name     string `validate:"required,min=2,max=100,alphaspace"`
	Phone    string `validate:"required,phone"`
	Password string `validate:"required,password"`
}

type RegistrationCompleteOutput struct {
	Token string
	User  entity.User
}

// RegistrationComplete fills in the profile of a record created by OTP login
// and issues the first token for it.
func (s *Usecase) RegistrationComplete(ctx context.Context, in RegistrationCompleteInput) (*RegistrationCompleteOutput, error) {
	ctx, span := s.startSpan(ctx, "RegistrationComplete")
	defer span.End()

	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByID(ctx, in.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("User not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if user.IsRegistrationComplete() {
		return nil, goerror.NewBusiness("Registration already completed", goerror.CodeConflict)
	}

	hashedPassword, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoDB.CompleteRegistration(ctx, entity.CompleteRegistration{
		UserID:         user.ID,
		Name:           in.Name,
		Phone:          in.Phone,
		CredentialHash: string(hashedPassword),
	}); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusiness("Phone already registered", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo complete registration", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	token, err := s.jwt.Generate(user.ID, user.Email, user.Role.String())
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishRegistrationCompleted(ctx, event.RegistrationCompleted{
			UserID: user.ID,
			Email:  user.Email,
			Name:   in.Name,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to publish registration completed", "user_id", user.ID, "error", err)
		}
		return nil
	})

	updated, err := s.repoDB.GetUserByID(ctx, user.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user after completion", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &RegistrationCompleteOutput{Token: token, User: *updated}, nil
}
