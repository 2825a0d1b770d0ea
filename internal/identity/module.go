package identity

import (
	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/otentika/otentika/internal/identity/inbound"
	"github.com/otentika/otentika/internal/identity/outbound/db"
	"github.com/otentika/otentika/internal/identity/outbound/email"
	"github.com/otentika/otentika/internal/identity/outbound/mq"
	"github.com/otentika/otentika/internal/identity/usecase"
	"github.com/otentika/otentika/internal/pkg/clock"
	"github.com/otentika/otentika/internal/pkg/config"
	"github.com/otentika/otentika/internal/pkg/goroutine"
	"github.com/otentika/otentika/internal/pkg/hash"
	"github.com/otentika/otentika/internal/pkg/idempotency"
	"github.com/otentika/otentika/internal/pkg/instrument"
	"github.com/otentika/otentika/internal/pkg/jwt"
	"github.com/otentika/otentika/internal/pkg/mail"
	"github.com/otentika/otentika/internal/pkg/messaging"
	"github.com/otentika/otentika/internal/pkg/otp"
	"github.com/otentika/otentika/internal/pkg/router"
	"github.com/otentika/otentika/internal/pkg/uid"
	"github.com/otentika/otentika/internal/pkg/validator"
)

type Dependency struct {
	DBConn      *pgxpool.Pool              `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Enforcer    *casbin.Enforcer           `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Messaging   messaging.Messaging        `validate:"required"`
	Mail        mail.Mail                  `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	Bcrypt      hash.Hash                  `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	OTP         otp.Generator              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
	JWT         jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAuth := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)
	repoMail := email.New(dep.Mail, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbAuth,
		RepoMessaging: repoMsg,
		RepoEmail:     repoMail,
		Idempotency:   dep.Idempotency,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Bcrypt:        dep.Bcrypt,
		UID:           dep.UID,
		OTP:           dep.OTP,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
		Enforcer:      dep.Enforcer,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
