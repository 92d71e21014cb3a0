package usecase

import (
	"context"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
	"github.com/wicaksonoadi/edubell/internal/pkg/goerror"
)

type BroadcastInput struct {
	UserIDs   []int64 `validate:"required,min=1,max=1000,dive,gt=0"`
	Title     string  `validate:"required,min=3,max=150"`
	Message   string  `validate:"required,min=3,max=2000"`
	Type      string  `validate:"required,oneof=system_maintenance course_announcement"`
	Priority  string  `validate:"omitempty,oneof=low medium high urgent"`
	ActionURL string  `validate:"omitempty,url,max=500"`
}

type BroadcastOutput struct {
	Created int
}

// Broadcast lets an admin push a platform or course announcement to a set
// of users. Each recipient gets an independent notification and fan-out.
func (s *Usecase) Broadcast(ctx context.Context, in BroadcastInput) (*BroadcastOutput, error) {
	ctx, span := s.startSpan(ctx, "Broadcast")
	defer span.End()

	if _, err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	priority := entity.PriorityFromString(in.Priority)
	if priority == entity.PriorityUnknown {
		priority = entity.PriorityMedium
	}

	created := 0
	for _, userID := range in.UserIDs {
		s.addNotification(ctx, entity.CreateNotification{
			UserID:    userID,
			Title:     in.Title,
			Message:   in.Message,
			Type:      entity.TypeFromString(in.Type),
			Priority:  priority,
			ActionURL: in.ActionURL,
		})
		created++
	}

	return &BroadcastOutput{Created: created}, nil
}
