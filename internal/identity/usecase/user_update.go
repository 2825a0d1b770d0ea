package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/otentika/otentika/internal/identity/entity"
	"github.com/otentika/otentika/internal/pkg/goerror"
)

type UserUpdateInput struct {
	ID    int64  `validate:"required,gt=0"`
	Email string `validate:"omitempty,email"`
	Phone string `validate:"omitempty,phone"`
	Name  string `validate:"omitempty,min=2,max=100,alphaspace"`
	Role  string `validate:"omitempty,oneof=user admin"`
}

type UserUpdateOutput struct {
	User entity.User
}

// UserUpdate applies a partial update. Changing the role requires the
// users:update_role permission; for anyone else the request is rejected and
// the stored role is left untouched.
func (s *Usecase) UserUpdate(ctx context.Context, in UserUpdateInput) (*UserUpdateOutput, error) {
	ctx, span := s.startSpan(ctx, "UserUpdate")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if _, err := s.authenticated(ctx); err != nil {
		return nil, err
	}

	role := entity.RoleUnknown
	if in.Role != "" {
		if _, err := s.authorized(ctx, "users", "update_role"); err != nil {
			var gerr *goerror.Error
			if errors.As(err, &gerr) && gerr.Code() == goerror.CodeForbidden {
				return nil, goerror.NewBusiness("Not authorized to update role", goerror.CodeForbidden)
			}
			return nil, err
		}
		role = entity.RoleFromString(in.Role)
	}

	user, err := s.repoDB.GetUserByID(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user not found", "user_id", in.ID)
		return nil, goerror.NewBusiness("User not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoDB.PatchUser(ctx, entity.PatchUser{
		ID:    user.ID,
		Email: in.Email,
		Phone: in.Phone,
		Name:  in.Name,
		Role:  role,
	}); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusiness("Email or phone already registered", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo patch user", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	updated, err := s.repoDB.GetUserByID(ctx, user.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user after update", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &UserUpdateOutput{User: *updated}, nil
}
