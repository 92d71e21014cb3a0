package db

import (
	"context"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
)

func (s *DB) InsertNotification(ctx context.Context, n entity.Notification) (err error) {
	ctx, span := s.startSpan(ctx, "InsertNotification")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO notifications
			(id, user_id, title, message, type, priority, is_read, is_archived, action_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		n.ID, n.UserID, n.Title, n.Message, n.Type.String(), n.Priority.String(),
		n.IsRead, n.IsArchived, n.ActionURL, n.CreatedAt, n.UpdatedAt,
	)
	return s.mapError(err)
}

func (s *DB) ListNotifications(ctx context.Context, userID int64) (_ []entity.Notification, err error) {
	ctx, span := s.startSpan(ctx, "ListNotifications")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT id, user_id, title, message, type, priority, is_read, is_archived, action_url, created_at, updated_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	items := make([]entity.Notification, 0)
	for rows.Next() {
		var (
			n        entity.Notification
			typ      string
			priority string
		)
		if err = rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &typ, &priority,
			&n.IsRead, &n.IsArchived, &n.ActionURL, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, s.mapError(err)
		}
		n.Type = entity.TypeFromString(typ)
		n.Priority = entity.PriorityFromString(priority)
		items = append(items, n)
	}

	return items, s.mapError(rows.Err())
}

func (s *DB) SetNotificationRead(ctx context.Context, userID, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "SetNotificationRead")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE, updated_at = NOW()
		WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	return s.mapError(err)
}

func (s *DB) SetAllNotificationsRead(ctx context.Context, userID int64) (err error) {
	ctx, span := s.startSpan(ctx, "SetAllNotificationsRead")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE, updated_at = NOW()
		WHERE user_id = $1 AND is_read = FALSE`,
		userID,
	)
	return s.mapError(err)
}

func (s *DB) SetNotificationArchived(ctx context.Context, userID, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "SetNotificationArchived")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		UPDATE notifications SET is_archived = TRUE, updated_at = NOW()
		WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	return s.mapError(err)
}

func (s *DB) DeleteNotification(ctx context.Context, userID, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteNotification")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		DELETE FROM notifications WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	return s.mapError(err)
}
