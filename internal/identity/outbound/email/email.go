package email

import (
	"context"
	"fmt"
	"time"

	"github.com/otentika/otentika/internal/pkg/instrument"
	"github.com/otentika/otentika/internal/pkg/mail"
	"go.opentelemetry.io/otel/codes"
)

type Mail struct {
	client mail.Mail
	ins    instrument.Instrumentation
}

func New(client mail.Mail, ins instrument.Instrumentation) *Mail {
	return &Mail{client: client, ins: ins}
}

// SendOTP delivers a login code. The caller treats a returned error as a
// failed operation, so this send is synchronous by contract.
func (m *Mail) SendOTP(ctx context.Context, to, code string, ttl time.Duration) error {
	ctx, span := m.ins.Tracer("identity.outbound.email").Start(ctx, "SendOTP")
	defer span.End()

	minutes := int(ttl.Minutes())
	msg := mail.Message{
		To:      []string{to},
		Subject: "Your login code",
		TextBody: fmt.Sprintf(
			"Your one-time login code is %s. It expires in %d minutes.\r\n\r\nIf you did not request this code, you can ignore this email.",
			code, minutes,
		),
		HTMLBody: fmt.Sprintf(
			`<p>Your one-time login code is <strong>%s</strong>. It expires in %d minutes.</p><p>If you did not request this code, you can ignore this email.</p>`,
			code, minutes,
		),
	}

	if err := m.client.Send(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
