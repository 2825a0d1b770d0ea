package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/otentika/otentika/internal/notification/usecase"
	"github.com/otentika/otentika/internal/pkg/instrument"
	"github.com/otentika/otentika/internal/pkg/messaging"
	"github.com/otentika/otentika/internal/pkg/uid"
	"github.com/otentika/otentika/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) UserSignupNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "UserSignupNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: user signup notification", "msg_body", string(body))

	var payload event.UserSignup
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of user signup notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeUserSignup(ctx, usecase.ConsumeUserSignupInput{
		UserID: payload.UserID,
		Email:  payload.Email,
		Name:   payload.Name,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume user signup", "user_id", payload.UserID, "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) RegistrationCompletedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "RegistrationCompletedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: registration completed notification", "msg_body", string(body))

	var payload event.RegistrationCompleted
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of registration completed notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeRegistrationCompleted(ctx, usecase.ConsumeRegistrationCompletedInput{
		UserID: payload.UserID,
		Email:  payload.Email,
		Name:   payload.Name,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume registration completed", "user_id", payload.UserID, "error", err)
		return err
	}

	return nil
}
