package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
	"github.com/wicaksonoadi/edubell/internal/notification/schedule"
)

type ConsumeAssignmentUpsertedInput struct {
	AssignmentID int64   `validate:"required,gt=0"`
	CourseID     int64   `validate:"required,gt=0"`
	CourseName   string  `validate:"required,max=150"`
	Title        string  `validate:"required,max=150"`
	DueAt        int64   `validate:"required,gt=0"`
	StudentIDs   []int64 `validate:"required,min=1,dive,gt=0"`
}

// ConsumeAssignmentUpserted plans both reminder kinds for every enrolled
// student using each student's own timing settings. A fire time that has
// already passed is not scheduled; the notification goes out right away.
func (s *Usecase) ConsumeAssignmentUpserted(ctx context.Context, in ConsumeAssignmentUpsertedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeAssignmentUpserted")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "invalid assignment upserted message", "assignment_id", in.AssignmentID, "error", err)
		return nil
	}

	dueAt := time.Unix(in.DueAt, 0).UTC()
	now := s.clock.Now()

	pending := make([]entity.ReminderDescriptor, 0, len(in.StudentIDs)*2)
	for _, studentID := range in.StudentIDs {
		if _, err := s.userStore(ctx, studentID); err != nil {
			slog.ErrorContext(ctx, "failed to hydrate student before planning", "user_id", studentID, "error", err)
			continue
		}

		timing := s.settings.Get(studentID).ReminderTiming
		plan, err := schedule.ComputeReminder(dueAt, timing.AssignmentReminder, timing.AssignmentDue, now)
		if err != nil {
			slog.ErrorContext(ctx, "failed to compute reminder plan", "user_id", studentID, "assignment_id", in.AssignmentID, "error", err)
			continue
		}

		for _, d := range schedule.Descriptors(in.AssignmentID, studentID, plan) {
			if d.Overdue {
				s.fireReminderNow(ctx, d, in)
				continue
			}
			pending = append(pending, d)
		}
	}

	if len(pending) == 0 {
		return nil
	}

	if err := s.repoDB.InsertReminders(ctx, pending); err != nil {
		slog.ErrorContext(ctx, "failed to repo insert reminders", "assignment_id", in.AssignmentID, "error", err)
		return err
	}

	return nil
}

func (s *Usecase) fireReminderNow(ctx context.Context, d entity.ReminderDescriptor, in ConsumeAssignmentUpsertedInput) {
	typ := entity.TypeAssignmentReminder
	priority := entity.PriorityMedium
	message := fmt.Sprintf("%q in %s is due soon.", in.Title, in.CourseName)
	if d.Kind == entity.ReminderKindDueAlert {
		typ = entity.TypeAssignmentDue
		priority = entity.PriorityHigh
		message = fmt.Sprintf("%q in %s is about to close.", in.Title, in.CourseName)
	}

	s.addNotification(ctx, entity.CreateNotification{
		UserID:    d.UserID,
		Title:     in.Title,
		Message:   message,
		Type:      typ,
		Priority:  priority,
		ActionURL: fmt.Sprintf("%s/assignments/%d", s.cfg.GetString("app.web"), in.AssignmentID),
	})
}
