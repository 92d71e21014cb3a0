package usecase

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/wicaksonoadi/edubell/internal/notification/dispatch"
	"github.com/wicaksonoadi/edubell/internal/notification/entity"
	"github.com/wicaksonoadi/edubell/internal/notification/settings"
	"github.com/wicaksonoadi/edubell/internal/notification/store"
	"github.com/wicaksonoadi/edubell/internal/pkg/clock"
	"github.com/wicaksonoadi/edubell/internal/pkg/config"
	"github.com/wicaksonoadi/edubell/internal/pkg/instrument"
	"github.com/wicaksonoadi/edubell/internal/pkg/jwt"
	"github.com/wicaksonoadi/edubell/internal/pkg/storage"
	"github.com/wicaksonoadi/edubell/internal/pkg/uid"
	"github.com/wicaksonoadi/edubell/internal/pkg/validator"
)

type repoDB interface {
	InsertNotification(ctx context.Context, n entity.Notification) error
	ListNotifications(ctx context.Context, userID int64) ([]entity.Notification, error)
	SetNotificationRead(ctx context.Context, userID, id int64) error
	SetAllNotificationsRead(ctx context.Context, userID int64) error
	SetNotificationArchived(ctx context.Context, userID, id int64) error
	DeleteNotification(ctx context.Context, userID, id int64) error

	GetSettings(ctx context.Context, userID int64) (entity.Settings, bool, error)
	SaveSettings(ctx context.Context, userID int64, s entity.Settings) error

	InsertReminders(ctx context.Context, items []entity.ReminderDescriptor) error
	MarkReminderFired(ctx context.Context, targetEntityID, userID int64, kind entity.ReminderKind) error
}

type Usecase struct {
	repoDB     repoDB
	cfg        config.Config
	uid        uid.NumberID
	uuid       uid.StringID
	clock      clock.Clocker
	validator  validator.Validator
	jwt        jwt.JWT
	ins        instrument.Instrumentation
	registry   *store.Registry
	settings   *settings.Manager
	dispatcher *dispatch.Dispatcher
	exports    storage.Storage
	streamMu   sync.RWMutex
	streams    map[int64]map[*subscriber]struct{}
}

type Dependency struct {
	RepoDB     repoDB
	Config     config.Config
	UID        uid.NumberID
	UUID       uid.StringID
	Clock      clock.Clocker
	Validator  validator.Validator
	JWT        jwt.JWT
	Instrument instrument.Instrumentation
	Registry   *store.Registry
	Settings   *settings.Manager
	Dispatcher *dispatch.Dispatcher
	Exports    storage.Storage
}

func NewNotification(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:     dep.RepoDB,
		cfg:        dep.Config,
		uid:        dep.UID,
		uuid:       dep.UUID,
		clock:      dep.Clock,
		validator:  dep.Validator,
		jwt:        dep.JWT,
		ins:        dep.Instrument,
		registry:   dep.Registry,
		settings:   dep.Settings,
		dispatcher: dep.Dispatcher,
		exports:    dep.Exports,
		streams:    make(map[int64]map[*subscriber]struct{}),
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}
