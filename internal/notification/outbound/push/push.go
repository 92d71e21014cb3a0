// Package push hands notifications off to the mobile push gateway over the
// message bus. The gateway owns device tokens and channel-level retries;
// this side only retries the transport publish.
package push

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/codes"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
	"github.com/wicaksonoadi/edubell/internal/pkg/instrument"
	"github.com/wicaksonoadi/edubell/internal/pkg/messaging"
	"github.com/wicaksonoadi/edubell/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) SendPush(ctx context.Context, userID int64, n entity.Notification, requireInteraction bool) error {
	ctx, span := m.ins.Tracer("notification.outbound.push").Start(ctx, "SendPush")
	defer span.End()

	body, err := json.Marshal(event.PushDeliverMessage{
		NotificationID:     n.ID,
		UserID:             userID,
		Title:              n.Title,
		Body:               n.Message,
		RequireInteraction: requireInteraction,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	msg := messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}

	b := retry.NewFibonacci(200 * time.Millisecond)
	b = retry.WithCappedDuration(2*time.Second, b)
	b = retry.WithMaxRetries(3, b)

	err = retry.Do(ctx, b, func(ctx context.Context) error {
		if _, pErr := m.client.Publish(ctx, event.PushDeliverDestination, msg); pErr != nil {
			return retry.RetryableError(pErr)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
