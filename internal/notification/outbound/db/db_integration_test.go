package db

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
	"github.com/wicaksonoadi/edubell/internal/pkg/instrument"
)

const schema = `
CREATE TABLE notifications (
	id          BIGINT PRIMARY KEY,
	user_id     BIGINT NOT NULL,
	title       TEXT NOT NULL,
	message     TEXT NOT NULL,
	type        TEXT NOT NULL,
	priority    TEXT NOT NULL,
	is_read     BOOLEAN NOT NULL DEFAULT FALSE,
	is_archived BOOLEAN NOT NULL DEFAULT FALSE,
	action_url  TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE notification_settings (
	user_id    BIGINT PRIMARY KEY,
	document   JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE notification_reminders (
	target_entity_id BIGINT NOT NULL,
	user_id          BIGINT NOT NULL,
	fire_at          TIMESTAMPTZ NOT NULL,
	kind             TEXT NOT NULL,
	fired            BOOLEAN NOT NULL DEFAULT FALSE,
	UNIQUE (target_entity_id, user_id, kind)
);

CREATE TABLE users (
	id    BIGINT PRIMARY KEY,
	email TEXT NOT NULL
);
`

// startDB boots a throwaway postgres container, applies the schema, and
// returns a ready DB plus the raw pool for direct assertions.
func startDB(t *testing.T) (*DB, *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("edubell"),
		tcpostgres.WithUsername("edubell"),
		tcpostgres.WithPassword("edubell"),
		testcontainers.WithWaitStrategy(wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort(nat.Port("5432/tcp")),
		).WithStartupTimeoutDefault(time.Minute)),
	)
	if err != nil {
		t.Skipf("skipping, could not start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if tErr := testcontainers.TerminateContainer(container); tErr != nil {
			t.Logf("failed to terminate container: %v", tErr)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, schema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	return NewDB(pool, instrument.NewNoop()), pool
}

func seedNotification(t *testing.T, store *DB, id, userID int64, title string, at time.Time) {
	t.Helper()

	err := store.InsertNotification(context.Background(), entity.Notification{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Message:   "message for " + title,
		Type:      entity.TypeCourseAnnouncement,
		Priority:  entity.PriorityHigh,
		CreatedAt: at,
		UpdatedAt: at,
	})
	if err != nil {
		t.Fatalf("insert notification %d: %v", id, err)
	}
}

func TestDBNotifications(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	store, _ := startDB(t)
	ctx := context.Background()

	t.Run("InsertAndListNewestFirst", func(t *testing.T) {
		// Arrange
		base := time.Now().UTC().Truncate(time.Microsecond)
		seedNotification(t, store, 1, 10, "first", base)
		seedNotification(t, store, 2, 10, "second", base.Add(time.Minute))
		seedNotification(t, store, 3, 99, "other user", base)

		// Act
		items, err := store.ListNotifications(ctx, 10)

		// Assert
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 notifications, got %d", len(items))
		}
		if items[0].Title != "second" || items[1].Title != "first" {
			t.Fatalf("expected newest first, got %q then %q", items[0].Title, items[1].Title)
		}
		if items[0].Type != entity.TypeCourseAnnouncement {
			t.Fatalf("expected type to round trip, got %v", items[0].Type)
		}
		if items[0].Priority != entity.PriorityHigh {
			t.Fatalf("expected priority to round trip, got %v", items[0].Priority)
		}
	})

	t.Run("SetRead", func(t *testing.T) {
		// Act
		if err := store.SetNotificationRead(ctx, 10, 1); err != nil {
			t.Fatalf("set read: %v", err)
		}

		// Assert
		items, err := store.ListNotifications(ctx, 10)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		for _, n := range items {
			if n.ID == 1 && !n.IsRead {
				t.Fatal("expected notification 1 to be read")
			}
			if n.ID == 2 && n.IsRead {
				t.Fatal("expected notification 2 to stay unread")
			}
		}
	})

	t.Run("SetAllRead", func(t *testing.T) {
		// Act
		if err := store.SetAllNotificationsRead(ctx, 10); err != nil {
			t.Fatalf("set all read: %v", err)
		}

		// Assert
		items, err := store.ListNotifications(ctx, 10)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		for _, n := range items {
			if !n.IsRead {
				t.Fatalf("expected notification %d to be read", n.ID)
			}
		}
	})

	t.Run("SetArchived", func(t *testing.T) {
		// Act
		if err := store.SetNotificationArchived(ctx, 10, 2); err != nil {
			t.Fatalf("set archived: %v", err)
		}

		// Assert
		items, err := store.ListNotifications(ctx, 10)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		for _, n := range items {
			if n.ID == 2 && !n.IsArchived {
				t.Fatal("expected notification 2 to be archived")
			}
		}
	})

	t.Run("Delete", func(t *testing.T) {
		// Act
		if err := store.DeleteNotification(ctx, 10, 1); err != nil {
			t.Fatalf("delete: %v", err)
		}

		// Assert
		items, err := store.ListNotifications(ctx, 10)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("expected 1 notification left, got %d", len(items))
		}
		if items[0].ID != 2 {
			t.Fatalf("expected notification 2 to survive, got %d", items[0].ID)
		}
	})
}

func TestDBSettings(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	store, _ := startDB(t)
	ctx := context.Background()

	t.Run("MissingRowReportsNotFound", func(t *testing.T) {
		// Act
		_, found, err := store.GetSettings(ctx, 42)

		// Assert
		if err != nil {
			t.Fatalf("get settings: %v", err)
		}
		if found {
			t.Fatal("expected no settings for a fresh user")
		}
	})

	t.Run("SaveThenGetRoundTrips", func(t *testing.T) {
		// Arrange
		want := entity.DefaultSettings()
		want.Email.AssignmentDue = false
		want.Push.Enabled = false
		want.ReminderTiming.AssignmentReminder = 48

		// Act
		if err := store.SaveSettings(ctx, 42, want); err != nil {
			t.Fatalf("save settings: %v", err)
		}
		got, found, err := store.GetSettings(ctx, 42)

		// Assert
		if err != nil {
			t.Fatalf("get settings: %v", err)
		}
		if !found {
			t.Fatal("expected settings to exist after save")
		}
		if got != want {
			t.Fatalf("settings mismatch\n got: %+v\nwant: %+v", got, want)
		}
	})

	t.Run("SaveOverwritesExisting", func(t *testing.T) {
		// Arrange
		want := entity.DefaultSettings()
		want.ReminderTiming.AssignmentDue = 6

		// Act
		if err := store.SaveSettings(ctx, 42, want); err != nil {
			t.Fatalf("save settings: %v", err)
		}
		got, _, err := store.GetSettings(ctx, 42)

		// Assert
		if err != nil {
			t.Fatalf("get settings: %v", err)
		}
		if got.ReminderTiming.AssignmentDue != 6 {
			t.Fatalf("expected due lead 6, got %d", got.ReminderTiming.AssignmentDue)
		}
		if !got.Push.Enabled {
			t.Fatal("expected overwrite to restore push channel")
		}
	})
}

func TestDBReminders(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	store, pool := startDB(t)
	ctx := context.Background()

	countReminders := func(t *testing.T) int {
		t.Helper()
		var n int
		err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM notification_reminders`).Scan(&n)
		if err != nil {
			t.Fatalf("count reminders: %v", err)
		}
		return n
	}

	fireAt := time.Now().UTC().Truncate(time.Microsecond).Add(time.Hour)

	t.Run("InsertBatch", func(t *testing.T) {
		// Act
		err := store.InsertReminders(ctx, []entity.ReminderDescriptor{
			{TargetEntityID: 7, UserID: 10, FireAt: fireAt, Kind: entity.ReminderKindReminder},
			{TargetEntityID: 7, UserID: 10, FireAt: fireAt.Add(22 * time.Hour), Kind: entity.ReminderKindDueAlert},
		})

		// Assert
		if err != nil {
			t.Fatalf("insert reminders: %v", err)
		}
		if got := countReminders(t); got != 2 {
			t.Fatalf("expected 2 reminders, got %d", got)
		}
	})

	t.Run("ConflictReschedulesInsteadOfDuplicating", func(t *testing.T) {
		// Arrange
		moved := fireAt.Add(30 * time.Minute)

		// Act
		err := store.InsertReminders(ctx, []entity.ReminderDescriptor{
			{TargetEntityID: 7, UserID: 10, FireAt: moved, Kind: entity.ReminderKindReminder},
		})

		// Assert
		if err != nil {
			t.Fatalf("insert reminders: %v", err)
		}
		if got := countReminders(t); got != 2 {
			t.Fatalf("expected upsert to keep 2 reminders, got %d", got)
		}
		var stored time.Time
		err = pool.QueryRow(ctx, `
			SELECT fire_at FROM notification_reminders
			WHERE target_entity_id = 7 AND user_id = 10 AND kind = $1`,
			entity.ReminderKindReminder.String(),
		).Scan(&stored)
		if err != nil {
			t.Fatalf("query fire_at: %v", err)
		}
		if !stored.Equal(moved) {
			t.Fatalf("expected fire_at %v, got %v", moved, stored)
		}
	})

	t.Run("MarkFired", func(t *testing.T) {
		// Act
		err := store.MarkReminderFired(ctx, 7, 10, entity.ReminderKindDueAlert)

		// Assert
		if err != nil {
			t.Fatalf("mark fired: %v", err)
		}
		var fired bool
		err = pool.QueryRow(ctx, `
			SELECT fired FROM notification_reminders
			WHERE target_entity_id = 7 AND user_id = 10 AND kind = $1`,
			entity.ReminderKindDueAlert.String(),
		).Scan(&fired)
		if err != nil {
			t.Fatalf("query fired: %v", err)
		}
		if !fired {
			t.Fatal("expected due alert reminder to be fired")
		}
	})
}

func TestDBUserEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	store, pool := startDB(t)
	ctx := context.Background()

	t.Run("ResolvesEmail", func(t *testing.T) {
		// Arrange
		if _, err := pool.Exec(ctx, `INSERT INTO users (id, email) VALUES (10, 'student@campus.edu')`); err != nil {
			t.Fatalf("seed user: %v", err)
		}

		// Act
		email, err := store.GetUserEmail(ctx, 10)

		// Assert
		if err != nil {
			t.Fatalf("get user email: %v", err)
		}
		if email != "student@campus.edu" {
			t.Fatalf("expected student@campus.edu, got %q", email)
		}
	})

	t.Run("UnknownUser", func(t *testing.T) {
		// Act
		_, err := store.GetUserEmail(ctx, 404)

		// Assert
		if err == nil {
			t.Fatal("expected an error for an unknown user")
		}
	})
}
