package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/otentika/otentika/internal/identity/entity"
	"github.com/otentika/otentika/internal/pkg/clock"
	"github.com/otentika/otentika/internal/pkg/config"
	"github.com/otentika/otentika/internal/pkg/goerror"
	"github.com/otentika/otentika/internal/pkg/goroutine"
	"github.com/otentika/otentika/internal/pkg/hash"
	"github.com/otentika/otentika/internal/pkg/idempotency"
	"github.com/otentika/otentika/internal/pkg/instrument"
	"github.com/otentika/otentika/internal/pkg/jwt"
	"github.com/otentika/otentika/internal/pkg/uid"
	"github.com/otentika/otentika/internal/pkg/validator"
	"github.com/otentika/otentika/internal/shared/event"
)

var testNow = time.Date(2026, time.August, 30, 10, 0, 0, 0, time.UTC)

func assertBusinessErr(t *testing.T, err error, code goerror.Code, msg string) {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected goerror, got %v", err)
	}
	if gerr.Code() != code {
		t.Fatalf("expected code %v, got %v", code, gerr.Code())
	}
	if msg != "" && gerr.Msg() != msg {
		t.Fatalf("expected message %q, got %q", msg, gerr.Msg())
	}
}

func authCtx(role string, userID int64) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: userID, UserRole: role})
}

type fakeDB struct {
	getUserByEmail       func(ctx context.Context, email string) (*entity.User, error)
	getUserByID          func(ctx context.Context, id int64) (*entity.User, error)
	getUserList          func(ctx context.Context) ([]entity.User, error)
	existsByEmailOrPhone func(ctx context.Context, email, phone string) (bool, error)
	createUser           func(ctx context.Context, in entity.NewUser) error
	upsertChallenge      func(ctx context.Context, in entity.UpsertChallenge) (int64, error)
	consumeChallenge     func(ctx context.Context, userID int64, code string) (bool, error)
	completeRegistration func(ctx context.Context, in entity.CompleteRegistration) error
	patchUser            func(ctx context.Context, in entity.PatchUser) error
	deleteUser           func(ctx context.Context, id int64) (bool, error)
}

func (f *fakeDB) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	return f.getUserByEmail(ctx, email)
}

func (f *fakeDB) GetUserByID(ctx context.Context, id int64) (*entity.User, error) {
	return f.getUserByID(ctx, id)
}

func (f *fakeDB) GetUserList(ctx context.Context) ([]entity.User, error) {
	return f.getUserList(ctx)
}

func (f *fakeDB) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	return f.existsByEmailOrPhone(ctx, email, phone)
}

func (f *fakeDB) CreateUser(ctx context.Context, in entity.NewUser) error {
	return f.createUser(ctx, in)
}

func (f *fakeDB) UpsertChallenge(ctx context.Context, in entity.UpsertChallenge) (int64, error) {
	return f.upsertChallenge(ctx, in)
}

func (f *fakeDB) ConsumeChallenge(ctx context.Context, userID int64, code string) (bool, error) {
	return f.consumeChallenge(ctx, userID, code)
}

func (f *fakeDB) CompleteRegistration(ctx context.Context, in entity.CompleteRegistration) error {
	return f.completeRegistration(ctx, in)
}

func (f *fakeDB) PatchUser(ctx context.Context, in entity.PatchUser) error {
	return f.patchUser(ctx, in)
}

func (f *fakeDB) DeleteUser(ctx context.Context, id int64) (bool, error) {
	return f.deleteUser(ctx, id)
}

type fakeMessaging struct {
	signups     []event.UserSignup
	completions []event.RegistrationCompleted
}

func (f *fakeMessaging) PublishUserSignup(_ context.Context, msg event.UserSignup) error {
	f.signups = append(f.signups, msg)
	return nil
}

func (f *fakeMessaging) PublishRegistrationCompleted(_ context.Context, msg event.RegistrationCompleted) error {
	f.completions = append(f.completions, msg)
	return nil
}

type sentOTP struct {
	To   string
	Code string
	TTL  time.Duration
}

type fakeEmail struct {
	sent []sentOTP
	err  error
}

func (f *fakeEmail) SendOTP(_ context.Context, to, code string, ttl time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentOTP{To: to, Code: code, TTL: ttl})
	return nil
}

// passthroughIdemp runs the guarded function directly, or short-circuits with
// execErr to simulate a prior state.
type passthroughIdemp struct {
	execErr error
}

func (p passthroughIdemp) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	return idempotency.StateNone, nil
}

func (p passthroughIdemp) MarkCompleted(context.Context, string, time.Duration) error { return nil }

func (p passthroughIdemp) MarkFailed(context.Context, string, time.Duration) error { return nil }

func (p passthroughIdemp) Exec(ctx context.Context, _ string, fn func(context.Context) error, _ ...idempotency.Option) error {
	if p.execErr != nil {
		return p.execErr
	}
	return fn(ctx)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixedUID struct{ id int64 }

func (f fixedUID) Generate() int64 { return f.id }

type fixedOTP struct {
	code string
	err  error
}

func (f fixedOTP) Generate() (string, error) { return f.code, f.err }

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()

	const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		t.Fatalf("casbin model: %v", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		t.Fatalf("casbin enforcer: %v", err)
	}

	if _, err := e.AddPolicies([][]string{{"admin", "users", "update_role"}}); err != nil {
		t.Fatalf("casbin policies: %v", err)
	}

	return e
}

func newTestConfig(t *testing.T) config.Config {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
modules:
  identity:
    otp_ttl_minutes: 5
    otp_send_lock_seconds: 10
`))
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	return cfg
}

type fixtures struct {
	db    *fakeDB
	msg   *fakeMessaging
	email *fakeEmail
	g     *goroutine.Manager
	clock fixedClock
}

func newTestUsecase(t *testing.T) (*Usecase, *fixtures) {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	clk := fixedClock{now: testNow}
	tokenizer, err := jwt.NewHS512(jwt.Config{
		Secret:     bytes.Repeat([]byte("s"), 64),
		Issuer:     "test",
		Audiences:  []string{"test"},
		TTLMinutes: time.Hour,
		Clock:      clock.New(),
		UUID:       uid.NewUUID(),
	})
	if err != nil {
		t.Fatalf("jwt: %v", err)
	}

	f := &fixtures{
		db:    &fakeDB{},
		msg:   &fakeMessaging{},
		email: &fakeEmail{},
		g:     goroutine.NewManager(10),
		clock: clk,
	}

	uc := New(Dependency{
		RepoDB:        f.db,
		RepoMessaging: f.msg,
		RepoEmail:     f.email,
		Idempotency:   passthroughIdemp{},
		Validator:     v,
		Config:        newTestConfig(t),
		Bcrypt:        hash.NewBcrypt(4, ""),
		UID:           fixedUID{id: 7001},
		OTP:           fixedOTP{code: "123456"},
		Clock:         clk,
		JWT:           tokenizer,
		Instrument:    instrument.NewNoop(),
		Enforcer:      newTestEnforcer(t),
		Goroutine:     f.g,
	})

	return uc, f
}
