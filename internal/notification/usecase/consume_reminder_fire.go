package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
)

type ConsumeReminderFireInput struct {
	ReminderID   int64  `validate:"required,gt=0"`
	UserID       int64  `validate:"required,gt=0"`
	AssignmentID int64  `validate:"required,gt=0"`
	Kind         string `validate:"required,oneof=reminder due_alert"`
	Title        string `validate:"required,max=150"`
	Message      string `validate:"required,max=2000"`
	Overdue      bool
}

// ConsumeReminderFire turns a fired reminder descriptor into an inbox
// notification. The external timer service owns the wake-up; this side
// only creates and fans out.
func (s *Usecase) ConsumeReminderFire(ctx context.Context, in ConsumeReminderFireInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeReminderFire")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "invalid reminder fire message", "reminder_id", in.ReminderID, "error", err)
		return nil
	}

	kind := entity.ReminderKindFromString(in.Kind)

	typ := entity.TypeAssignmentReminder
	priority := entity.PriorityMedium
	if kind == entity.ReminderKindDueAlert {
		typ = entity.TypeAssignmentDue
		priority = entity.PriorityHigh
	}
	if in.Overdue {
		priority = entity.PriorityUrgent
	}

	s.addNotification(ctx, entity.CreateNotification{
		UserID:    in.UserID,
		Title:     in.Title,
		Message:   in.Message,
		Type:      typ,
		Priority:  priority,
		ActionURL: fmt.Sprintf("%s/assignments/%d", s.cfg.GetString("app.web"), in.AssignmentID),
	})

	if err := s.repoDB.MarkReminderFired(ctx, in.AssignmentID, in.UserID, kind); err != nil {
		slog.ErrorContext(ctx, "failed to repo mark reminder fired", "reminder_id", in.ReminderID, "error", err)
	}

	return nil
}
