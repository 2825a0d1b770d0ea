package inbound

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/otentika/otentika/internal/pkg/config"
	"github.com/otentika/otentika/internal/pkg/goroutine"
	"github.com/otentika/otentika/internal/pkg/instrument"
	"github.com/otentika/otentika/internal/pkg/messaging"
	"github.com/otentika/otentika/internal/pkg/uid"
	"github.com/otentika/otentika/internal/shared/event"
	"github.com/sethvargo/go-retry"
)

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.notification.consumer_names")

	var consumers = []struct {
		name    string
		topic   string // destination where publisher sent message
		handler messaging.Handler
	}{
		{
			name:    event.UserSignupConsumerNotification,
			topic:   event.UserSignupDestination,
			handler: mqHandler.UserSignupNotification,
		},
		{
			name:    event.RegistrationCompletedConsumerNotification,
			topic:   event.RegistrationCompletedDestination,
			handler: mqHandler.RegistrationCompletedNotification,
		},
	}

	for _, consumer := range consumers {
		if len(enableConsumerNames) > 0 && slices.Contains(enableConsumerNames, consumer.name) {
			routine.Go(ctx, func(pCtx context.Context) error {
				slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name)

				// Reconnect with fibonacci backoff when the broker
				// connection drops; stop only when the app shuts down.
				backoff := retry.WithCappedDuration(30*time.Second, retry.NewFibonacci(time.Second))
				return retry.Do(pCtx, backoff, func(rCtx context.Context) error {
					err := messenger.Consume(rCtx,
						consumer.topic,
						consumer.handler,
						messaging.WithChannel(consumer.name),
						messaging.WithQueueGroup(consumer.name),
						messaging.WithGroup(consumer.name),
						messaging.WithSubscription(consumer.name),
						messaging.WithAutoAck(true),
						messaging.WithConcurrency(10),
						messaging.WithMaxInFlight(10),
					)
					if err != nil && rCtx.Err() == nil {
						slog.ErrorContext(rCtx, "consumer stopped, reconnecting", "consumer", consumer.name, "error", err)
						return retry.RetryableError(err)
					}
					return err
				})
			})
		}
	}
}
