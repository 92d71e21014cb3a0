package schedule

import (
	"testing"
	"time"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
)

func TestComputeReminder(t *testing.T) {

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("FutureDueDate", func(t *testing.T) {

		// Arrange
		dueAt := now.Add(48 * time.Hour)

		// Act
		plan, err := ComputeReminder(dueAt, 24, 2, now)

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if want := now.Add(24 * time.Hour); !plan.ReminderFireAt.Equal(want) {
			t.Fatalf("expected reminder at %v, got %v", want, plan.ReminderFireAt)
		}
		if want := now.Add(46 * time.Hour); !plan.DueAlertFireAt.Equal(want) {
			t.Fatalf("expected due alert at %v, got %v", want, plan.DueAlertFireAt)
		}
		if plan.ReminderOverdue || plan.DueAlertOverdue {
			t.Fatalf("expected nothing overdue, got %+v", plan)
		}
	})

	t.Run("ReminderTimeAlreadyPassed", func(t *testing.T) {

		// Arrange
		dueAt := now.Add(12 * time.Hour)

		// Act
		plan, err := ComputeReminder(dueAt, 24, 2, now)

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !plan.ReminderOverdue {
			t.Fatalf("expected reminder overdue")
		}
		if plan.DueAlertOverdue {
			t.Fatalf("expected due alert not overdue")
		}
	})

	t.Run("FireAtExactlyNowIsOverdue", func(t *testing.T) {

		// Arrange
		dueAt := now.Add(24 * time.Hour)

		// Act
		plan, err := ComputeReminder(dueAt, 24, 2, now)

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !plan.ReminderOverdue {
			t.Fatalf("expected reminder at now to be overdue")
		}
	})

	t.Run("ReminderLeadOutOfRange", func(t *testing.T) {

		// Arrange
		dueAt := now.Add(48 * time.Hour)

		// Act
		_, err := ComputeReminder(dueAt, 200, 2, now)

		// Assert
		if err == nil {
			t.Fatalf("expected error for lead of 200 hours")
		}
	})

	t.Run("DueLeadOutOfRange", func(t *testing.T) {

		// Arrange
		dueAt := now.Add(48 * time.Hour)

		// Act
		_, err := ComputeReminder(dueAt, 24, 0, now)

		// Assert
		if err == nil {
			t.Fatalf("expected error for lead of 0 hours")
		}
	})
}

func TestDescriptors(t *testing.T) {

	// Arrange
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	plan, err := ComputeReminder(now.Add(48*time.Hour), 24, 2, now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Act
	got := Descriptors(101, 7, plan)

	// Assert
	if len(got) != 2 {
		t.Fatalf("expected 2 descriptors, got %d", len(got))
	}
	if got[0].Kind != entity.ReminderKindReminder || got[1].Kind != entity.ReminderKindDueAlert {
		t.Fatalf("expected reminder then due alert, got %v and %v", got[0].Kind, got[1].Kind)
	}
	for _, d := range got {
		if d.TargetEntityID != 101 || d.UserID != 7 {
			t.Fatalf("expected descriptor bound to assignment 101 user 7, got %+v", d)
		}
	}
}
