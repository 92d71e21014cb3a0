package usecase

import (
	"context"
	"log/slog"

	"github.com/wicaksonoadi/edubell/internal/notification/store"
	"github.com/wicaksonoadi/edubell/internal/pkg/goerror"
)

// userStore returns the in-memory store for a user, loading persisted
// notifications and settings on the first touch. After hydration the
// in-memory copy is authoritative. A failed load leaves the store
// unhydrated so the next touch retries instead of serving an empty
// history for the rest of the session.
func (s *Usecase) userStore(ctx context.Context, userID int64) (*store.Store, error) {
	st, _ := s.registry.GetOrCreate(userID)
	if st.Hydrated() {
		return st, nil
	}

	items, err := s.repoDB.ListNotifications(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list notifications", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	stored, ok, err := s.repoDB.GetSettings(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get settings", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	st.Hydrate(items)
	if ok {
		s.settings.Hydrate(userID, stored)
	}

	return st, nil
}
