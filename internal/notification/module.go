package notification

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/wicaksonoadi/edubell/internal/notification/dispatch"
	"github.com/wicaksonoadi/edubell/internal/notification/inbound"
	"github.com/wicaksonoadi/edubell/internal/notification/outbound/db"
	"github.com/wicaksonoadi/edubell/internal/notification/outbound/email"
	"github.com/wicaksonoadi/edubell/internal/notification/outbound/push"
	"github.com/wicaksonoadi/edubell/internal/notification/settings"
	"github.com/wicaksonoadi/edubell/internal/notification/store"
	"github.com/wicaksonoadi/edubell/internal/notification/usecase"
	"github.com/wicaksonoadi/edubell/internal/pkg/clock"
	"github.com/wicaksonoadi/edubell/internal/pkg/config"
	"github.com/wicaksonoadi/edubell/internal/pkg/goroutine"
	"github.com/wicaksonoadi/edubell/internal/pkg/idempotency"
	"github.com/wicaksonoadi/edubell/internal/pkg/instrument"
	"github.com/wicaksonoadi/edubell/internal/pkg/jwt"
	"github.com/wicaksonoadi/edubell/internal/pkg/mail"
	"github.com/wicaksonoadi/edubell/internal/pkg/messaging"
	"github.com/wicaksonoadi/edubell/internal/pkg/router"
	"github.com/wicaksonoadi/edubell/internal/pkg/storage"
	"github.com/wicaksonoadi/edubell/internal/pkg/uid"
	"github.com/wicaksonoadi/edubell/internal/pkg/validator"
)

type Dependency struct {
	Ctx        context.Context
	DBConn     *pgxpool.Pool
	Redis      *redis.Client
	Messaging  messaging.Messaging
	Config     config.Config
	Instrument instrument.Instrumentation
	UID        uid.NumberID
	UUID       uid.StringID
	Clock      clock.Clocker
	Goroutine  *goroutine.Manager
	Validator  validator.Validator
	Router     *router.Router
	Mail       mail.Mail
	JWT        jwt.JWT
	Storage    storage.Storage
}

func New(dep Dependency) error {
	dbNotif := db.NewDB(dep.DBConn, dep.Instrument)
	emailSender := email.New(dep.Mail, dbNotif, dep.Config, dep.Instrument)
	pushSender := push.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.NewNotification(usecase.Dependency{
		RepoDB:     dbNotif,
		Config:     dep.Config,
		UID:        dep.UID,
		UUID:       dep.UUID,
		Clock:      dep.Clock,
		Validator:  dep.Validator,
		JWT:        dep.JWT,
		Instrument: dep.Instrument,
		Registry:   store.NewRegistry(dep.UID, dep.Clock),
		Settings:   settings.NewManager(dbNotif),
		Dispatcher: dispatch.NewDispatcher(emailSender, pushSender),
		Exports:    dep.Storage,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)
	if dep.Ctx != nil {
		var idem idempotency.Idempotency
		if dep.Redis != nil {
			idem = idempotency.New(dep.Redis)
		}
		inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, idem, uc, dep.Instrument)
	}

	return nil
}
