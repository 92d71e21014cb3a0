// Package schedule computes reminder fire times for assignment due dates.
package schedule

import (
	"time"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
	"github.com/wicaksonoadi/edubell/internal/pkg/goerror"
)

// Lead time bounds in hours. Reminders may fire up to a week ahead,
// due alerts up to a day ahead.
const (
	MinReminderLead = 1
	MaxReminderLead = 168
	MinDueLead      = 1
	MaxDueLead      = 24
)

// ComputeReminder derives both fire times for one due date. leadReminder
// and leadDue are offsets in hours before dueAt. A fire time at or before
// now is flagged overdue rather than shifted.
func ComputeReminder(dueAt time.Time, leadReminder, leadDue int, now time.Time) (entity.ReminderPlan, error) {
	if leadReminder < MinReminderLead || leadReminder > MaxReminderLead {
		return entity.ReminderPlan{}, goerror.NewInvalidInput(nil, "assignment_reminder", "must be between 1 and 168 hours")
	}

	if leadDue < MinDueLead || leadDue > MaxDueLead {
		return entity.ReminderPlan{}, goerror.NewInvalidInput(nil, "assignment_due", "must be between 1 and 24 hours")
	}

	reminderAt := dueAt.Add(-time.Duration(leadReminder) * time.Hour)
	dueAlertAt := dueAt.Add(-time.Duration(leadDue) * time.Hour)

	return entity.ReminderPlan{
		ReminderFireAt:  reminderAt,
		DueAlertFireAt:  dueAlertAt,
		ReminderOverdue: !reminderAt.After(now),
		DueAlertOverdue: !dueAlertAt.After(now),
	}, nil
}

// Descriptors expands a plan into the two reminder descriptors to keep
// for one assignment and user.
func Descriptors(assignmentID, userID int64, plan entity.ReminderPlan) []entity.ReminderDescriptor {
	return []entity.ReminderDescriptor{
		{
			TargetEntityID: assignmentID,
			UserID:         userID,
			FireAt:         plan.ReminderFireAt,
			Kind:           entity.ReminderKindReminder,
			Overdue:        plan.ReminderOverdue,
		},
		{
			TargetEntityID: assignmentID,
			UserID:         userID,
			FireAt:         plan.DueAlertFireAt,
			Kind:           entity.ReminderKindDueAlert,
			Overdue:        plan.DueAlertOverdue,
		},
	}
}
