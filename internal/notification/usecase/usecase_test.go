package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
	"github.com/wicaksonoadi/edubell/internal/notification/settings"
	"github.com/wicaksonoadi/edubell/internal/notification/store"
	"github.com/wicaksonoadi/edubell/internal/pkg/clock"
	"github.com/wicaksonoadi/edubell/internal/pkg/instrument"
	"github.com/wicaksonoadi/edubell/internal/pkg/jwt"
	"github.com/wicaksonoadi/edubell/internal/pkg/validator"
)

type seqNumber struct {
	next int64
}

func (s *seqNumber) Generate() int64 {
	s.next++
	return s.next
}

// fakeRepo is an in-memory repoDB; listErr makes ListNotifications fail
// until cleared.
type fakeRepo struct {
	mu            sync.Mutex
	notifications []entity.Notification
	listErr       error
}

func (r *fakeRepo) InsertNotification(_ context.Context, n entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notifications = append([]entity.Notification{n}, r.notifications...)
	return nil
}

func (r *fakeRepo) ListNotifications(_ context.Context, userID int64) ([]entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listErr != nil {
		return nil, r.listErr
	}

	out := make([]entity.Notification, 0, len(r.notifications))
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeRepo) setListErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listErr = err
}

func (r *fakeRepo) SetNotificationRead(context.Context, int64, int64) error     { return nil }
func (r *fakeRepo) SetAllNotificationsRead(context.Context, int64) error        { return nil }
func (r *fakeRepo) SetNotificationArchived(context.Context, int64, int64) error { return nil }
func (r *fakeRepo) DeleteNotification(context.Context, int64, int64) error      { return nil }

func (r *fakeRepo) GetSettings(context.Context, int64) (entity.Settings, bool, error) {
	return entity.Settings{}, false, nil
}

func (r *fakeRepo) SaveSettings(context.Context, int64, entity.Settings) error { return nil }

func (r *fakeRepo) InsertReminders(context.Context, []entity.ReminderDescriptor) error {
	return nil
}

func (r *fakeRepo) MarkReminderFired(context.Context, int64, int64, entity.ReminderKind) error {
	return nil
}

func newTestUsecase(t *testing.T, repo repoDB) *Usecase {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("build validator: %v", err)
	}

	return NewNotification(Dependency{
		RepoDB:     repo,
		Validator:  v,
		Instrument: instrument.NewNoop(),
		Registry:   store.NewRegistry(&seqNumber{}, clock.New()),
		Settings:   settings.NewManager(nil),
		Clock:      clock.New(),
	})
}

func authedCtx(userID int64) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: userID})
}
