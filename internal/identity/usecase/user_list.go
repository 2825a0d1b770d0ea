package usecase

import (
	"context"
	"log/slog"

	"github.com/otentika/otentika/internal/identity/entity"
	"github.com/otentika/otentika/internal/pkg/goerror"
	"github.com/samber/lo"
)

type UserListOutput struct {
	Total int
	Users []entity.User
}

func (s *Usecase) UserList(ctx context.Context) (*UserListOutput, error) {
	ctx, span := s.startSpan(ctx, "UserList")
	defer span.End()

	if _, err := s.authenticated(ctx); err != nil {
		return nil, err
	}

	users, err := s.repoDB.GetUserList(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list users", "error", err)
		return nil, goerror.NewServer(err)
	}

	// Challenge fields never leave the store.
	sanitized := lo.Map(users, func(u entity.User, _ int) entity.User {
		u.CredentialHash = ""
		u.OTPCode = ""
		return u
	})

	return &UserListOutput{Total: len(sanitized), Users: sanitized}, nil
}
