package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/otentika/otentika/internal/identity/entity"
	"github.com/otentika/otentika/internal/pkg/goerror"
	"github.com/otentika/otentika/internal/pkg/jwt"
	"github.com/otentika/otentika/internal/shared/event"
)

type SignupInput struct {
	Name     string `validate:"required,min=2,max=100,alphaspace"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"required,phone"`
	Password string `validate:"required,password"`
	Role     string `validate:"omitempty,oneof=user admin"`
}

type SignupOutput struct {
	Token string
	User  entity.User
}

func (s *Usecase) Signup(ctx context.Context, in SignupInput) (*SignupOutput, error) {
	ctx, span := s.startSpan(ctx, "Signup")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	role := entity.RoleUser
	if in.Role != "" {
		role = entity.RoleFromString(in.Role)
	}

	// Only an authenticated admin may create another admin.
	if role == entity.RoleAdmin {
		clm := jwt.GetAuth(ctx)
		if clm == nil || entity.RoleFromString(clm.UserRole) != entity.RoleAdmin {
			slog.WarnContext(ctx, "rejected admin role request on signup", "email", in.Email)
			return nil, goerror.NewBusiness("Not authorized to assign role", goerror.CodeForbidden)
		}
	}

	exists, err := s.repoDB.ExistsByEmailOrPhone(ctx, in.Email, in.Phone)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo check duplicate identity", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}
	if exists {
		return nil, goerror.NewBusiness("Email or phone already registered", goerror.CodeConflict)
	}

	hashedPassword, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	newUser := entity.NewUser{
		ID:             s.uid.Generate(),
		Email:          in.Email,
		Phone:          in.Phone,
		Name:           in.Name,
		Role:           role,
		CredentialHash: string(hashedPassword),
	}

	if err := s.repoDB.CreateUser(ctx, newUser); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusiness("Email or phone already registered", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create user", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	token, err := s.jwt.Generate(newUser.ID, newUser.Email, role.String())
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "user_id", newUser.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishUserSignup(ctx, event.UserSignup{
			UserID: newUser.ID,
			Email:  newUser.Email,
			Name:   newUser.Name,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to publish user signup", "user_id", newUser.ID, "error", err)
		}
		return nil
	})

	user, err := s.repoDB.GetUserByID(ctx, newUser.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user after signup", "user_id", newUser.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &SignupOutput{Token: token, User: *user}, nil
}
