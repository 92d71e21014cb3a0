package inbound

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/wicaksonoadi/edubell/internal/notification/usecase"
	"github.com/wicaksonoadi/edubell/internal/pkg/idempotency"
	"github.com/wicaksonoadi/edubell/internal/pkg/instrument"
	"github.com/wicaksonoadi/edubell/internal/pkg/messaging"
	"github.com/wicaksonoadi/edubell/internal/pkg/uid"
	"github.com/wicaksonoadi/edubell/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

// dedupeTTL bounds how long a consumed message key is remembered. The
// brokers deliver at least once; a redelivery inside the window is dropped.
const dedupeTTL = 24 * time.Hour

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	idem idempotency.Idempotency
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) dedupe(ctx context.Context, key string, fn func(context.Context) error) error {
	if h.idem == nil {
		return fn(ctx)
	}

	return h.idem.Exec(ctx, key, fn, idempotency.WithStateTTL(dedupeTTL))
}

func (h *MQHandler) AssignmentUpsertedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "AssignmentUpsertedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: assignment upserted notification", "msg_body", string(body))

	var payload event.AssignmentUpsertedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of assignment upserted notification", "msg_body", string(body), "error", err)
		return nil
	}

	key := fmt.Sprintf("assignment_upserted:%d:%d", payload.AssignmentID, payload.DueAt)
	err := h.dedupe(ctx, key, func(ctx context.Context) error {
		return h.uc.ConsumeAssignmentUpserted(ctx, usecase.ConsumeAssignmentUpsertedInput{
			AssignmentID: payload.AssignmentID,
			CourseID:     payload.CourseID,
			CourseName:   payload.CourseName,
			Title:        payload.Title,
			DueAt:        payload.DueAt,
			StudentIDs:   payload.StudentIDs,
		})
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to consume assignment upserted", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) ReminderFireNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "ReminderFireNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: reminder fire notification", "msg_body", string(body))

	var payload event.ReminderFireMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of reminder fire notification", "msg_body", string(body), "error", err)
		return nil
	}

	key := fmt.Sprintf("reminder_fire:%d", payload.ReminderID)
	err := h.dedupe(ctx, key, func(ctx context.Context) error {
		return h.uc.ConsumeReminderFire(ctx, usecase.ConsumeReminderFireInput{
			ReminderID:   payload.ReminderID,
			UserID:       payload.UserID,
			AssignmentID: payload.AssignmentID,
			Kind:         payload.Kind,
			Title:        payload.Title,
			Message:      payload.Message,
			Overdue:      payload.Overdue,
		})
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to consume reminder fire", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) CourseUpdatedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "CourseUpdatedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: course updated notification", "msg_body", string(body))

	var payload event.CourseUpdatedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of course updated notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeCourseUpdated(ctx, usecase.ConsumeCourseUpdatedInput{
		CourseID:   payload.CourseID,
		CourseName: payload.CourseName,
		Summary:    payload.Summary,
		Material:   payload.Material,
		StudentIDs: payload.StudentIDs,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume course updated", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) DiscussionRepliedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "DiscussionRepliedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: discussion replied notification", "msg_body", string(body))

	var payload event.DiscussionRepliedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of discussion replied notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeDiscussionReplied(ctx, usecase.ConsumeDiscussionRepliedInput{
		DiscussionID:    payload.DiscussionID,
		CourseID:        payload.CourseID,
		ThreadTitle:     payload.ThreadTitle,
		ReplyAuthorID:   payload.ReplyAuthorID,
		ReplyAuthorName: payload.ReplyAuthorName,
		ReplyExcerpt:    payload.ReplyExcerpt,
		MentionedIDs:    payload.MentionedIDs,
		ParticipantIDs:  payload.ParticipantIDs,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume discussion replied", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
