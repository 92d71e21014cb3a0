package usecase

import (
	"context"
	"time"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
	"github.com/wicaksonoadi/edubell/internal/notification/schedule"
	"github.com/wicaksonoadi/edubell/internal/pkg/goerror"
)

type PreviewReminderInput struct {
	DueAt time.Time `validate:"required"`
}

// PreviewReminder computes the reminder plan the caller's current timing
// settings would produce for a due date.
func (s *Usecase) PreviewReminder(ctx context.Context, in PreviewReminderInput) (*entity.ReminderPlan, error) {
	ctx, span := s.startSpan(ctx, "PreviewReminder")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if _, err := s.userStore(ctx, clm.UserID); err != nil {
		return nil, err
	}

	timing := s.settings.Get(clm.UserID).ReminderTiming
	plan, err := schedule.ComputeReminder(in.DueAt, timing.AssignmentReminder, timing.AssignmentDue, s.clock.Now())
	if err != nil {
		return nil, err
	}

	return &plan, nil
}
