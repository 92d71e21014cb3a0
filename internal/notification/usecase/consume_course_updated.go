package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
)

type ConsumeCourseUpdatedInput struct {
	CourseID   int64   `validate:"required,gt=0"`
	CourseName string  `validate:"required,max=150"`
	Summary    string  `validate:"required,max=2000"`
	Material   bool
	StudentIDs []int64 `validate:"required,min=1,dive,gt=0"`
}

// ConsumeCourseUpdated notifies every enrolled student about a course
// change. New material gets its own type so the category mapping can
// route it with course updates.
func (s *Usecase) ConsumeCourseUpdated(ctx context.Context, in ConsumeCourseUpdatedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeCourseUpdated")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "invalid course updated message", "course_id", in.CourseID, "error", err)
		return nil
	}

	typ := entity.TypeCourseUpdate
	if in.Material {
		typ = entity.TypeCourseMaterialAdded
	}

	for _, studentID := range in.StudentIDs {
		s.addNotification(ctx, entity.CreateNotification{
			UserID:    studentID,
			Title:     in.CourseName,
			Message:   in.Summary,
			Type:      typ,
			Priority:  entity.PriorityLow,
			ActionURL: fmt.Sprintf("%s/courses/%d", s.cfg.GetString("app.web"), in.CourseID),
		})
	}

	return nil
}
