package idempotency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// startRedis boots a throwaway redis container and returns a connected client.
func startRedis(t *testing.T) *redis.Client {
	t.Helper()

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Skipf("skipping, could not start redis container: %v", err)
	}
	t.Cleanup(func() {
		if tErr := testcontainers.TerminateContainer(container); tErr != nil {
			t.Logf("failed to terminate container: %v", tErr)
		}
	})

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	opt, err := redis.ParseURL(uri)
	if err != nil {
		t.Fatalf("parse redis url: %v", err)
	}

	client := redis.NewClient(opt)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestStateTrackerExec(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	tracker := New(startRedis(t))
	ctx := context.Background()

	t.Run("RunsOnceThenDeduplicates", func(t *testing.T) {
		// Arrange
		calls := 0
		fn := func(context.Context) error {
			calls++
			return nil
		}

		// Act
		first := tracker.Exec(ctx, "dedupe-1", fn)
		second := tracker.Exec(ctx, "dedupe-1", fn)

		// Assert
		if first != nil {
			t.Fatalf("first exec: %v", first)
		}
		if !errors.Is(second, ErrAlreadyCompleted) {
			t.Fatalf("expected ErrAlreadyCompleted, got %v", second)
		}
		if calls != 1 {
			t.Fatalf("expected fn to run once, ran %d times", calls)
		}
	})

	t.Run("FailureIsRemembered", func(t *testing.T) {
		// Arrange
		boom := errors.New("boom")

		// Act
		first := tracker.Exec(ctx, "dedupe-2", func(context.Context) error { return boom })
		second := tracker.Exec(ctx, "dedupe-2", func(context.Context) error { return nil })

		// Assert
		if !errors.Is(first, boom) {
			t.Fatalf("expected fn error, got %v", first)
		}
		if !errors.Is(second, ErrAlreadyFailed) {
			t.Fatalf("expected ErrAlreadyFailed, got %v", second)
		}
	})

	t.Run("FailedStateExpiresWithTTL", func(t *testing.T) {
		// Arrange
		boom := errors.New("boom")
		_ = tracker.Exec(ctx, "dedupe-3", func(context.Context) error { return boom },
			WithStateTTL(time.Second))

		// Act
		time.Sleep(1500 * time.Millisecond)
		err := tracker.Exec(ctx, "dedupe-3", func(context.Context) error { return nil })

		// Assert
		if err != nil {
			t.Fatalf("expected retry to run after TTL, got %v", err)
		}
	})

	t.Run("ConcurrentHolderBlocksOthers", func(t *testing.T) {
		// Arrange
		state, err := tracker.Acquire(ctx, "dedupe-4", time.Minute)
		if err != nil {
			t.Fatalf("acquire: %v", err)
		}
		if state != StateNone {
			t.Fatalf("expected StateNone on first acquire, got %v", state)
		}

		// Act
		err = tracker.Exec(ctx, "dedupe-4", func(context.Context) error { return nil })

		// Assert
		if !errors.Is(err, ErrAlreadyInProgress) {
			t.Fatalf("expected ErrAlreadyInProgress, got %v", err)
		}
	})
}
