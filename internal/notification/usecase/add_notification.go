package usecase

import (
	"context"
	"log/slog"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
)

// addNotification stores a new notification for one user and fans it out:
// persist, SSE stream, then the delivery channels. The store mutation is
// the source of truth; delivery failures are recorded in the report and
// never roll it back. Senders run after the store lock is released.
func (s *Usecase) addNotification(ctx context.Context, in entity.CreateNotification) (entity.Notification, entity.DeliveryReport) {
	st, err := s.userStore(ctx, in.UserID)
	if err != nil {
		// Deliver on the unhydrated store anyway; it stays marked
		// unhydrated, so the next inbox touch retries the load.
		slog.ErrorContext(ctx, "failed to hydrate store before add", "user_id", in.UserID, "error", err)
		st, _ = s.registry.GetOrCreate(in.UserID)
	}

	n := st.Add(in)

	if err := s.repoDB.InsertNotification(ctx, n); err != nil {
		slog.ErrorContext(ctx, "failed to repo insert notification", "user_id", in.UserID, "notification_id", n.ID, "error", err)
	}

	s.publishNotification(n)

	report := s.dispatcher.Dispatch(ctx, n, s.settings.Get(in.UserID))
	for ch, outcome := range report {
		slog.InfoContext(ctx, "notification delivery outcome",
			"notification_id", n.ID, "user_id", n.UserID,
			"channel", ch.String(), "outcome", outcome.String())
	}

	return n, report
}
