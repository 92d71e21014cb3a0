package entity

import "time"

// ReminderDescriptor is one scheduled reminder produced for an assignment.
type ReminderDescriptor struct {
	TargetEntityID int64
	UserID         int64
	FireAt         time.Time
	Kind           ReminderKind
	// Overdue marks a descriptor whose fire time already passed when it
	// was computed; it should be dispatched immediately, not scheduled.
	Overdue bool
}

// ReminderPlan is the result of computing both reminder kinds for one
// due date.
type ReminderPlan struct {
	ReminderFireAt  time.Time
	DueAlertFireAt  time.Time
	ReminderOverdue bool
	DueAlertOverdue bool
}
