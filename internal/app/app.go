package app

import (
	"context"
	"net/http"

	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
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
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	bcrypt    hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	otp       otp.Generator
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	mail      mail.Mail
	messaging messaging.Messaging
	casbin    *casbin.Enforcer

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initMessaging()
	app.initCasbin()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
