package usecase

import (
	"errors"
	"testing"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
)

func TestListInboxFilterSentinels(t *testing.T) {
	repo := &fakeRepo{notifications: []entity.Notification{
		{ID: 2, UserID: 7, Title: "quiz posted", Type: entity.TypeCourseAnnouncement, Priority: entity.PriorityHigh},
		{ID: 1, UserID: 7, Title: "essay due", Type: entity.TypeAssignmentDue, Priority: entity.PriorityMedium},
	}}
	uc := newTestUsecase(t, repo)
	ctx := authedCtx(7)

	t.Run("AllMatchesEverything", func(t *testing.T) {
		// Act
		out, err := uc.ListInbox(ctx, ListInboxInput{Type: "all", Priority: "all"})

		// Assert
		if err != nil {
			t.Fatalf("expected all sentinel to be accepted, got %v", err)
		}
		if len(out.Items) != 2 {
			t.Fatalf("expected unfiltered view of 2 items, got %d", len(out.Items))
		}
	})

	t.Run("AllEqualsAbsent", func(t *testing.T) {
		// Act
		explicit, err := uc.ListInbox(ctx, ListInboxInput{Type: "all", Priority: "all"})
		if err != nil {
			t.Fatalf("list with sentinel: %v", err)
		}
		absent, err := uc.ListInbox(ctx, ListInboxInput{})
		if err != nil {
			t.Fatalf("list without filters: %v", err)
		}

		// Assert
		if len(explicit.Items) != len(absent.Items) {
			t.Fatalf("expected same view, got %d vs %d items", len(explicit.Items), len(absent.Items))
		}
	})

	t.Run("AllTypeWithConcretePriority", func(t *testing.T) {
		// Act
		out, err := uc.ListInbox(ctx, ListInboxInput{Type: "all", Priority: "high"})

		// Assert
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(out.Items) != 1 || out.Items[0].ID != 2 {
			t.Fatalf("expected only the high priority item, got %+v", out.Items)
		}
	})

	t.Run("UnknownTypeStillRejected", func(t *testing.T) {
		// Act
		_, err := uc.ListInbox(ctx, ListInboxInput{Type: "bogus"})

		// Assert
		if err == nil {
			t.Fatal("expected unsupported type to be rejected")
		}
	})
}

func TestListInboxHydrationRetriesAfterFailure(t *testing.T) {

	// Arrange
	repo := &fakeRepo{
		notifications: []entity.Notification{
			{ID: 1, UserID: 7, Title: "persisted history", Type: entity.TypeCourseAnnouncement, Priority: entity.PriorityHigh},
		},
		listErr: errors.New("db down"),
	}
	uc := newTestUsecase(t, repo)
	ctx := authedCtx(7)

	// Act
	_, firstErr := uc.ListInbox(ctx, ListInboxInput{})
	repo.setListErr(nil)
	out, secondErr := uc.ListInbox(ctx, ListInboxInput{})

	// Assert
	if firstErr == nil {
		t.Fatal("expected first touch to fail while the db is down")
	}
	if secondErr != nil {
		t.Fatalf("expected retry to succeed, got %v", secondErr)
	}
	if len(out.Items) != 1 || out.Items[0].Title != "persisted history" {
		t.Fatalf("expected persisted history after retry, got %+v", out.Items)
	}
}
