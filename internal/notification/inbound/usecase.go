package inbound

import (
	"context"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
	"github.com/wicaksonoadi/edubell/internal/notification/usecase"
)

type ucConsumer interface {
	ConsumeAssignmentUpserted(ctx context.Context, in usecase.ConsumeAssignmentUpsertedInput) error
	ConsumeReminderFire(ctx context.Context, in usecase.ConsumeReminderFireInput) error
	ConsumeCourseUpdated(ctx context.Context, in usecase.ConsumeCourseUpdatedInput) error
	ConsumeDiscussionReplied(ctx context.Context, in usecase.ConsumeDiscussionRepliedInput) error
}

type ucStream interface {
	StreamNotifications(ctx context.Context) (<-chan usecase.StreamEvent, error)
}

type uc interface {
	ucConsumer
	ucStream

	ListInbox(ctx context.Context, in usecase.ListInboxInput) (*usecase.ListInboxOutput, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkInboxRead(ctx context.Context, in usecase.MarkInboxReadInput) error
	MarkAllInboxRead(ctx context.Context) error
	ArchiveInbox(ctx context.Context, in usecase.ArchiveInboxInput) error
	DeleteInbox(ctx context.Context, in usecase.DeleteInboxInput) error
	GetSettings(ctx context.Context) (*entity.Settings, error)
	UpdateSettings(ctx context.Context, in usecase.UpdateSettingsInput) (*entity.Settings, error)
	PreviewReminder(ctx context.Context, in usecase.PreviewReminderInput) (*entity.ReminderPlan, error)
	Broadcast(ctx context.Context, in usecase.BroadcastInput) (*usecase.BroadcastOutput, error)
	ExportInbox(ctx context.Context) (*usecase.ExportInboxOutput, error)
}
