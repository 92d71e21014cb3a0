package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
)

type ConsumeDiscussionRepliedInput struct {
	DiscussionID    int64   `validate:"required,gt=0"`
	CourseID        int64   `validate:"required,gt=0"`
	ThreadTitle     string  `validate:"required,max=150"`
	ReplyAuthorID   int64   `validate:"required,gt=0"`
	ReplyAuthorName string  `validate:"required,max=100"`
	ReplyExcerpt    string  `validate:"required,max=500"`
	MentionedIDs    []int64 `validate:"omitempty,dive,gt=0"`
	ParticipantIDs  []int64 `validate:"omitempty,dive,gt=0"`
}

// ConsumeDiscussionReplied notifies thread participants about a new reply.
// Mentioned users get the mention type at high priority; everyone else in
// the thread gets a plain reply. The reply author is never notified.
func (s *Usecase) ConsumeDiscussionReplied(ctx context.Context, in ConsumeDiscussionRepliedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeDiscussionReplied")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "invalid discussion replied message", "discussion_id", in.DiscussionID, "error", err)
		return nil
	}

	actionURL := fmt.Sprintf("%s/discussions/%d", s.cfg.GetString("app.web"), in.DiscussionID)
	mentioned := lo.Uniq(in.MentionedIDs)

	for _, userID := range mentioned {
		if userID == in.ReplyAuthorID {
			continue
		}

		s.addNotification(ctx, entity.CreateNotification{
			UserID:    userID,
			Title:     in.ThreadTitle,
			Message:   fmt.Sprintf("%s mentioned you: %s", in.ReplyAuthorName, in.ReplyExcerpt),
			Type:      entity.TypeDiscussionMention,
			Priority:  entity.PriorityHigh,
			ActionURL: actionURL,
		})
	}

	participants := lo.Without(lo.Uniq(in.ParticipantIDs), mentioned...)
	for _, userID := range participants {
		if userID == in.ReplyAuthorID {
			continue
		}

		s.addNotification(ctx, entity.CreateNotification{
			UserID:    userID,
			Title:     in.ThreadTitle,
			Message:   fmt.Sprintf("%s replied: %s", in.ReplyAuthorName, in.ReplyExcerpt),
			Type:      entity.TypeDiscussionReply,
			Priority:  entity.PriorityMedium,
			ActionURL: actionURL,
		})
	}

	return nil
}
