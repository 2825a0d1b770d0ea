package inbound

import (
	"context"

	"github.com/otentika/otentika/internal/notification/usecase"
)

type uc interface {
	ConsumeUserSignup(ctx context.Context, in usecase.ConsumeUserSignupInput) error
	ConsumeRegistrationCompleted(ctx context.Context, in usecase.ConsumeRegistrationCompletedInput) error
}
