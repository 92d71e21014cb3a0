package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
)

func (s *DB) InsertReminders(ctx context.Context, items []entity.ReminderDescriptor) (err error) {
	ctx, span := s.startSpan(ctx, "InsertReminders")
	defer func() { s.endSpan(span, err) }()

	if len(items) == 0 {
		return nil
	}

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return s.mapError(err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	for _, item := range items {
		_, err = tx.Exec(ctx, `
			INSERT INTO notification_reminders
				(target_entity_id, user_id, fire_at, kind, fired)
			VALUES ($1, $2, $3, $4, FALSE)
			ON CONFLICT (target_entity_id, user_id, kind)
			DO UPDATE SET fire_at = EXCLUDED.fire_at, fired = FALSE`,
			item.TargetEntityID, item.UserID, item.FireAt, item.Kind.String(),
		)
		if err != nil {
			return s.mapError(err)
		}
	}

	return s.mapError(tx.Commit(ctx))
}

func (s *DB) MarkReminderFired(ctx context.Context, targetEntityID, userID int64, kind entity.ReminderKind) (err error) {
	ctx, span := s.startSpan(ctx, "MarkReminderFired")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		UPDATE notification_reminders SET fired = TRUE
		WHERE target_entity_id = $1 AND user_id = $2 AND kind = $3`,
		targetEntityID, userID, kind.String(),
	)
	return s.mapError(err)
}
