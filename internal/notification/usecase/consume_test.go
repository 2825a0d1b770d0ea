package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/otentika/otentika/internal/pkg/config"
	"github.com/otentika/otentika/internal/pkg/instrument"
	"github.com/otentika/otentika/internal/pkg/mail"
	"github.com/otentika/otentika/internal/pkg/validator"
)

type fakeMail struct {
	sent []mail.Message
	err  error
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newTestUsecase(t *testing.T) (*Usecase, *fakeMail) {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
app:
  name: "Otentika"
  web: "http://localhost:3000"
modules:
  notification:
    support_email: "support@otentika.dev"
`))
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	mailer := &fakeMail{}
	uc := NewNotification(Dependency{
		RepoMail:   mailer,
		Config:     cfg,
		Clock:      fixedClock{now: time.Date(2026, time.August, 30, 10, 0, 0, 0, time.UTC)},
		Validator:  v,
		Instrument: instrument.NewNoop(),
	})

	return uc, mailer
}

func TestConsumeUserSignup(t *testing.T) {
	input := ConsumeUserSignupInput{UserID: 42, Email: "rina@example.com", Name: "Rina Wulandari"}

	t.Run("SendsWelcomeEmail", func(t *testing.T) {
		// Arrange
		uc, mailer := newTestUsecase(t)

		// Act
		err := uc.ConsumeUserSignup(context.Background(), input)

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(mailer.sent) != 1 {
			t.Fatalf("expected one email, got %d", len(mailer.sent))
		}
		msg := mailer.sent[0]
		if msg.To[0] != "rina@example.com" {
			t.Fatalf("unexpected recipient %v", msg.To)
		}
		if !strings.Contains(msg.Subject, "Otentika") {
			t.Fatalf("expected company name in subject, got %q", msg.Subject)
		}
		if !strings.Contains(msg.HTMLBody, "Rina Wulandari") || !strings.Contains(msg.HTMLBody, "2026") {
			t.Fatalf("expected rendered body, got %q", msg.HTMLBody)
		}
	})

	t.Run("DropsMalformedPayload", func(t *testing.T) {
		// Arrange
		uc, mailer := newTestUsecase(t)

		// Act, nil so the broker does not redeliver junk
		err := uc.ConsumeUserSignup(context.Background(), ConsumeUserSignupInput{Email: "not-an-email"})

		// Assert
		if err != nil {
			t.Fatalf("expected malformed payload to be dropped, got %v", err)
		}
		if len(mailer.sent) != 0 {
			t.Fatalf("expected no email, got %d", len(mailer.sent))
		}
	})

	t.Run("ReturnsDeliveryErrorForRedelivery", func(t *testing.T) {
		// Arrange
		uc, mailer := newTestUsecase(t)
		mailer.err = errors.New("smtp connection refused")

		// Act
		err := uc.ConsumeUserSignup(context.Background(), input)

		// Assert
		if err == nil {
			t.Fatal("expected delivery error to propagate")
		}
	})
}

func TestConsumeRegistrationCompleted(t *testing.T) {
	// Arrange
	uc, mailer := newTestUsecase(t)

	// Act
	err := uc.ConsumeRegistrationCompleted(context.Background(), ConsumeRegistrationCompletedInput{
		UserID: 43,
		Email:  "new@example.com",
		Name:   "Budi Santoso",
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(mailer.sent))
	}
	if !strings.Contains(mailer.sent[0].HTMLBody, "Budi Santoso") {
		t.Fatalf("expected rendered body, got %q", mailer.sent[0].HTMLBody)
	}
}
