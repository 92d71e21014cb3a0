package store

import (
	"testing"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
)

func filterFixture() []entity.Notification {
	return []entity.Notification{
		{ID: 5, Title: "Assignment Due Soon", Message: "Calculus homework is due in 2 hours", Type: entity.TypeAssignmentDue, Priority: entity.PriorityHigh},
		{ID: 4, Title: "New Reply", Message: "Someone replied to your thread", Type: entity.TypeDiscussionReply, Priority: entity.PriorityMedium},
		{ID: 3, Title: "Maintenance Window", Message: "Platform restarts at midnight", Type: entity.TypeSystemMaintenance, Priority: entity.PriorityLow, IsArchived: true},
		{ID: 2, Title: "Grade Posted", Message: "Your calculus quiz was graded", Type: entity.TypeAssignmentGraded, Priority: entity.PriorityMedium},
		{ID: 1, Title: "Welcome", Message: "Welcome to the course", Type: entity.TypeGeneral, Priority: entity.PriorityLow, IsArchived: true},
	}
}

func TestApplyFilter(t *testing.T) {

	t.Run("DefaultShowsOnlyActive", func(t *testing.T) {

		// Arrange
		items := filterFixture()

		// Act
		got := ApplyFilter(items, entity.Filter{})

		// Assert
		if len(got) != 3 {
			t.Fatalf("expected 3 active notifications, got %d", len(got))
		}
		for _, n := range got {
			if n.IsArchived {
				t.Fatalf("expected no archived notifications, got id %d", n.ID)
			}
		}
	})

	t.Run("ArchivedViewExcludesActive", func(t *testing.T) {

		// Arrange
		items := filterFixture()

		// Act
		got := ApplyFilter(items, entity.Filter{IncludeArchived: true})

		// Assert
		if len(got) != 2 {
			t.Fatalf("expected 2 archived notifications, got %d", len(got))
		}
		for _, n := range got {
			if !n.IsArchived {
				t.Fatalf("expected only archived notifications, got id %d", n.ID)
			}
		}
	})

	t.Run("ByType", func(t *testing.T) {

		// Arrange
		items := filterFixture()

		// Act
		got := ApplyFilter(items, entity.Filter{Type: entity.TypeAssignmentDue})

		// Assert
		if len(got) != 1 || got[0].ID != 5 {
			t.Fatalf("expected only the assignment_due notification, got %v", got)
		}
	})

	t.Run("ByPriority", func(t *testing.T) {

		// Arrange
		items := filterFixture()

		// Act
		got := ApplyFilter(items, entity.Filter{Priority: entity.PriorityMedium})

		// Assert
		if len(got) != 2 {
			t.Fatalf("expected 2 medium notifications, got %d", len(got))
		}
	})

	t.Run("SearchMatchesTitleCaseInsensitive", func(t *testing.T) {

		// Arrange
		items := filterFixture()

		// Act
		got := ApplyFilter(items, entity.Filter{SearchText: "ASSIGNMENT"})

		// Assert
		if len(got) != 1 || got[0].ID != 5 {
			t.Fatalf("expected title match on id 5, got %v", got)
		}
	})

	t.Run("SearchMatchesMessage", func(t *testing.T) {

		// Arrange
		items := filterFixture()

		// Act
		got := ApplyFilter(items, entity.Filter{SearchText: "calculus"})

		// Assert
		if len(got) != 2 {
			t.Fatalf("expected 2 message matches, got %d", len(got))
		}
	})

	t.Run("CombinedCriteria", func(t *testing.T) {

		// Arrange
		items := filterFixture()

		// Act
		got := ApplyFilter(items, entity.Filter{SearchText: "calculus", Priority: entity.PriorityMedium})

		// Assert
		if len(got) != 1 || got[0].ID != 2 {
			t.Fatalf("expected only the graded quiz notification, got %v", got)
		}
	})

	t.Run("NoMatchesReturnsEmpty", func(t *testing.T) {

		// Arrange
		items := filterFixture()

		// Act
		got := ApplyFilter(items, entity.Filter{SearchText: "nonexistent"})

		// Assert
		if len(got) != 0 {
			t.Fatalf("expected no matches, got %d", len(got))
		}
	})

	t.Run("PreservesOrdering", func(t *testing.T) {

		// Arrange
		items := filterFixture()

		// Act
		got := ApplyFilter(items, entity.Filter{})

		// Assert
		for i := 1; i < len(got); i++ {
			if got[i-1].ID < got[i].ID {
				t.Fatalf("expected input ordering preserved, got %d before %d", got[i-1].ID, got[i].ID)
			}
		}
	})

	t.Run("DoesNotMutateInput", func(t *testing.T) {

		// Arrange
		items := filterFixture()

		// Act
		ApplyFilter(items, entity.Filter{SearchText: "welcome", IncludeArchived: true})

		// Assert
		if len(items) != 5 || items[0].ID != 5 {
			t.Fatalf("expected input slice untouched")
		}
	})
}
