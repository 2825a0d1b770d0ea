package mq

import (
	"context"
	"encoding/json"

	"github.com/otentika/otentika/internal/pkg/instrument"
	"github.com/otentika/otentika/internal/pkg/messaging"
	"github.com/otentika/otentika/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) publish(ctx context.Context, destination string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	_, err = m.client.Publish(ctx, destination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	})

	return err
}

func (m *Messaging) PublishUserSignup(ctx context.Context, msg event.UserSignup) error {
	ctx, span := m.ins.Tracer("identity.outbound.mq").Start(ctx, "PublishUserSignup")
	defer span.End()

	if err := m.publish(ctx, event.UserSignupDestination, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (m *Messaging) PublishRegistrationCompleted(ctx context.Context, msg event.RegistrationCompleted) error {
	ctx, span := m.ins.Tracer("identity.outbound.mq").Start(ctx, "PublishRegistrationCompleted")
	defer span.End()

	if err := m.publish(ctx, event.RegistrationCompletedDestination, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
