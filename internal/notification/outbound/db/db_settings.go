package db

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
)

// settingsDoc is the jsonb shape of one user's settings row.
type settingsDoc struct {
	Email          channelDoc `json:"email"`
	Push           channelDoc `json:"push"`
	InApp          channelDoc `json:"in_app"`
	ReminderTiming timingDoc  `json:"reminder_timing"`
}

type channelDoc struct {
	Enabled             bool `json:"enabled"`
	AssignmentReminders bool `json:"assignment_reminders"`
	AssignmentDue       bool `json:"assignment_due"`
	AssignmentGraded    bool `json:"assignment_graded"`
	CourseUpdates       bool `json:"course_updates"`
	CourseAnnouncements bool `json:"course_announcements"`
	DiscussionReplies   bool `json:"discussion_replies"`
	SystemUpdates       bool `json:"system_updates"`
}

type timingDoc struct {
	AssignmentReminder int `json:"assignment_reminder"`
	AssignmentDue      int `json:"assignment_due"`
}

func (s *DB) GetSettings(ctx context.Context, userID int64) (_ entity.Settings, _ bool, err error) {
	ctx, span := s.startSpan(ctx, "GetSettings")
	defer func() { s.endSpan(span, err) }()

	var raw []byte
	err = s.conn.QueryRow(ctx, `
		SELECT document FROM notification_settings WHERE user_id = $1`,
		userID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.Settings{}, false, nil
	}
	if err != nil {
		return entity.Settings{}, false, s.mapError(err)
	}

	var doc settingsDoc
	if err = json.Unmarshal(raw, &doc); err != nil {
		return entity.Settings{}, false, err
	}

	return entity.Settings{
		Email:          entity.ChannelSettings(doc.Email),
		Push:           entity.ChannelSettings(doc.Push),
		InApp:          entity.ChannelSettings(doc.InApp),
		ReminderTiming: entity.ReminderTiming(doc.ReminderTiming),
	}, true, nil
}

func (s *DB) SaveSettings(ctx context.Context, userID int64, set entity.Settings) (err error) {
	ctx, span := s.startSpan(ctx, "SaveSettings")
	defer func() { s.endSpan(span, err) }()

	raw, err := json.Marshal(settingsDoc{
		Email:          channelDoc(set.Email),
		Push:           channelDoc(set.Push),
		InApp:          channelDoc(set.InApp),
		ReminderTiming: timingDoc(set.ReminderTiming),
	})
	if err != nil {
		return err
	}

	_, err = s.conn.Exec(ctx, `
		INSERT INTO notification_settings (user_id, document, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET document = EXCLUDED.document, updated_at = NOW()`,
		userID, raw,
	)
	return s.mapError(err)
}
