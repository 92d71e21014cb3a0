// Package dispatch fans a stored notification out to its delivery channels.
package dispatch

import (
	"context"
	"log/slog"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
)

// EmailSender delivers one notification over email.
type EmailSender interface {
	SendEmail(ctx context.Context, userID int64, n entity.Notification) error
}

// PushSender delivers one notification as a push message. requireInteraction
// asks the client to keep the notification on screen until dismissed.
type PushSender interface {
	SendPush(ctx context.Context, userID int64, n entity.Notification, requireInteraction bool) error
}

// Dispatcher evaluates a user's settings per channel and calls the matching
// sender. Channels are independent: one failing or disabled channel never
// affects the others. The in-app channel has no external sender; the
// notification is already stored when Dispatch runs, so an enabled in-app
// channel is always a local success.
type Dispatcher struct {
	email EmailSender
	push  PushSender
}

// NewDispatcher builds a Dispatcher. Nil senders are treated as a failing
// channel when the settings would otherwise allow delivery.
func NewDispatcher(email EmailSender, push PushSender) *Dispatcher {
	return &Dispatcher{email: email, push: push}
}

// Dispatch delivers n to every channel the settings allow and reports the
// per-channel outcome. It never holds locks of the caller; senders may block.
func (d *Dispatcher) Dispatch(ctx context.Context, n entity.Notification, s entity.Settings) entity.DeliveryReport {
	report := entity.DeliveryReport{}

	if s.InApp.Allows(n.Type) {
		report[entity.ChannelInApp] = entity.DeliveryOutcomeSent
	} else {
		report[entity.ChannelInApp] = entity.DeliveryOutcomeSkippedDisabled
	}

	report[entity.ChannelEmail] = d.deliverEmail(ctx, n, s.Email)
	report[entity.ChannelPush] = d.deliverPush(ctx, n, s.Push)

	return report
}

func (d *Dispatcher) deliverEmail(ctx context.Context, n entity.Notification, cs entity.ChannelSettings) entity.DeliveryOutcome {
	if !cs.Allows(n.Type) {
		return entity.DeliveryOutcomeSkippedDisabled
	}

	if d.email == nil {
		return entity.DeliveryOutcomeFailed
	}

	if err := d.email.SendEmail(ctx, n.UserID, n); err != nil {
		slog.WarnContext(ctx, "email delivery failed",
			"notification_id", n.ID, "user_id", n.UserID, "error", err)
		return entity.DeliveryOutcomeFailed
	}

	return entity.DeliveryOutcomeSent
}

func (d *Dispatcher) deliverPush(ctx context.Context, n entity.Notification, cs entity.ChannelSettings) entity.DeliveryOutcome {
	if !cs.Allows(n.Type) {
		return entity.DeliveryOutcomeSkippedDisabled
	}

	if d.push == nil {
		return entity.DeliveryOutcomeFailed
	}

	requireInteraction := n.Priority == entity.PriorityUrgent
	if err := d.push.SendPush(ctx, n.UserID, n, requireInteraction); err != nil {
		slog.WarnContext(ctx, "push delivery failed",
			"notification_id", n.ID, "user_id", n.UserID, "error", err)
		return entity.DeliveryOutcomeFailed
	}

	return entity.DeliveryOutcomeSent
}
