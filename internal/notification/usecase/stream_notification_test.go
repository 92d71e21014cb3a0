package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
)

func TestStreamNotifications(t *testing.T) {

	t.Run("DeliversToSubscriber", func(t *testing.T) {
		// Arrange
		uc := newTestUsecase(t, &fakeRepo{})
		ctx, cancel := context.WithCancel(authedCtx(7))
		defer cancel()

		ch, err := uc.StreamNotifications(ctx)
		if err != nil {
			t.Fatalf("stream: %v", err)
		}

		// Act
		uc.publishNotification(entity.Notification{
			ID: 1, UserID: 7, Title: "live update",
			Type: entity.TypeCourseAnnouncement, Priority: entity.PriorityHigh,
		})

		// Assert
		select {
		case evt := <-ch:
			if evt.Title != "live update" {
				t.Fatalf("expected live update event, got %+v", evt)
			}
		case <-time.After(time.Second):
			t.Fatal("expected an event on the stream")
		}
	})

	t.Run("IgnoresOtherUsers", func(t *testing.T) {
		// Arrange
		uc := newTestUsecase(t, &fakeRepo{})
		ctx, cancel := context.WithCancel(authedCtx(7))
		defer cancel()

		ch, err := uc.StreamNotifications(ctx)
		if err != nil {
			t.Fatalf("stream: %v", err)
		}

		// Act
		uc.publishNotification(entity.Notification{ID: 1, UserID: 99, Title: "someone else"})

		// Assert
		select {
		case evt := <-ch:
			t.Fatalf("expected no event for another user, got %+v", evt)
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("PublishDuringUnsubscribe", func(t *testing.T) {
		// Arrange
		uc := newTestUsecase(t, &fakeRepo{})
		keepCtx, keepCancel := context.WithCancel(authedCtx(7))
		defer keepCancel()

		keep, err := uc.StreamNotifications(keepCtx)
		if err != nil {
			t.Fatalf("stream: %v", err)
		}

		const churn = 20
		var wg sync.WaitGroup
		cancels := make([]context.CancelFunc, 0, churn)
		for i := 0; i < churn; i++ {
			ctx, cancel := context.WithCancel(authedCtx(7))
			cancels = append(cancels, cancel)

			ch, err := uc.StreamNotifications(ctx)
			if err != nil {
				t.Fatalf("stream %d: %v", i, err)
			}

			wg.Add(1)
			go func() {
				defer wg.Done()
				for range ch {
				}
			}()
		}

		// Act: publish while every churn subscriber tears down.
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				uc.publishNotification(entity.Notification{
					ID: int64(i), UserID: 7, Title: "burst",
					Type: entity.TypeCourseAnnouncement, Priority: entity.PriorityLow,
				})
			}
		}()
		for _, cancel := range cancels {
			cancel()
		}
		wg.Wait()

		// Assert: the surviving subscriber saw at least one event.
		select {
		case evt := <-keep:
			if evt.UserID != 7 {
				t.Fatalf("expected events for user 7, got %+v", evt)
			}
		case <-time.After(time.Second):
			t.Fatal("expected the surviving stream to receive events")
		}
	})
}
