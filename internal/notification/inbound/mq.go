package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/wicaksonoadi/edubell/internal/pkg/config"
	"github.com/wicaksonoadi/edubell/internal/pkg/goroutine"
	"github.com/wicaksonoadi/edubell/internal/pkg/idempotency"
	"github.com/wicaksonoadi/edubell/internal/pkg/instrument"
	"github.com/wicaksonoadi/edubell/internal/pkg/messaging"
	"github.com/wicaksonoadi/edubell/internal/pkg/uid"
	"github.com/wicaksonoadi/edubell/internal/shared/event"
)

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	idem idempotency.Idempotency,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, idem: idem, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.notification.consumer_names")

	var consumers = []struct {
		name    string
		topic   string // destination where publisher sent message
		handler messaging.Handler
	}{
		{
			name:    event.AssignmentUpsertedConsumerNotification,
			topic:   event.AssignmentUpsertedDestination,
			handler: mqHandler.AssignmentUpsertedNotification,
		},
		{
			name:    event.ReminderFireConsumerNotification,
			topic:   event.ReminderFireDestination,
			handler: mqHandler.ReminderFireNotification,
		},
		{
			name:    event.CourseUpdatedConsumerNotification,
			topic:   event.CourseUpdatedDestination,
			handler: mqHandler.CourseUpdatedNotification,
		},
		{
			name:    event.DiscussionRepliedConsumerNotification,
			topic:   event.DiscussionRepliedDestination,
			handler: mqHandler.DiscussionRepliedNotification,
		},
	}

	for _, consumer := range consumers {
		if len(enableConsumerNames) > 0 && slices.Contains(enableConsumerNames, consumer.name) {
			routine.Go(ctx, func(pCtx context.Context) error {
				slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name)
				return messenger.Consume(pCtx,
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
			})
		}
	}
}
