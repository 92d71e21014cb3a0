package entity

import (
	"strings"
)

type Type int16

const (
	TypeUnknown             Type = 0
	TypeAssignmentReminder  Type = 1
	TypeAssignmentDue       Type = 2
	TypeAssignmentGraded    Type = 3
	TypeCourseUpdate        Type = 4
	TypeCourseAnnouncement  Type = 5
	TypeCourseMaterialAdded Type = 6
	TypeDiscussionReply     Type = 7
	TypeDiscussionMention   Type = 8
	TypeSystemMaintenance   Type = 9
	TypeGeneral             Type = 10
)

func TypeFromString(raw string) Type {
	switch strings.TrimSpace(raw) {
	case "assignment_reminder":
		return TypeAssignmentReminder
	case "assignment_due":
		return TypeAssignmentDue
	case "assignment_graded":
		return TypeAssignmentGraded
	case "course_update":
		return TypeCourseUpdate
	case "course_announcement":
		return TypeCourseAnnouncement
	case "course_material_added":
		return TypeCourseMaterialAdded
	case "discussion_reply":
		return TypeDiscussionReply
	case "discussion_mention":
		return TypeDiscussionMention
	case "system_maintenance":
		return TypeSystemMaintenance
	case "general":
		return TypeGeneral
	default:
		return TypeUnknown
	}
}

func (t Type) String() string {
	switch t {
	case TypeAssignmentReminder:
		return "assignment_reminder"
	case TypeAssignmentDue:
		return "assignment_due"
	case TypeAssignmentGraded:
		return "assignment_graded"
	case TypeCourseUpdate:
		return "course_update"
	case TypeCourseAnnouncement:
		return "course_announcement"
	case TypeCourseMaterialAdded:
		return "course_material_added"
	case TypeDiscussionReply:
		return "discussion_reply"
	case TypeDiscussionMention:
		return "discussion_mention"
	case TypeSystemMaintenance:
		return "system_maintenance"
	case TypeGeneral:
		return "general"
	default:
		return "unknown"
	}
}

type Priority int16

const (
	PriorityUnknown Priority = 0
	PriorityLow     Priority = 1
	PriorityMedium  Priority = 2
	PriorityHigh    Priority = 3
	PriorityUrgent  Priority = 4
)

func PriorityFromString(raw string) Priority {
	switch strings.TrimSpace(raw) {
	case "low":
		return PriorityLow
	case "medium":
		return PriorityMedium
	case "high":
		return PriorityHigh
	case "urgent":
		return PriorityUrgent
	default:
		return PriorityUnknown
	}
}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityUrgent:
		return "urgent"
	default:
		return "unknown"
	}
}

type Channel int16

const (
	ChannelUnknown Channel = 0
	ChannelInApp   Channel = 1
	ChannelPush    Channel = 2
	ChannelEmail   Channel = 3
)

func ChannelFromString(raw string) Channel {
	switch strings.TrimSpace(raw) {
	case "in-app":
		return ChannelInApp
	case "push":
		return ChannelPush
	case "email":
		return ChannelEmail
	default:
		return ChannelUnknown
	}
}

func (c Channel) String() string {
	switch c {
	case ChannelInApp:
		return "in-app"
	case ChannelPush:
		return "push"
	case ChannelEmail:
		return "email"
	default:
		return "unknown"
	}
}

type DeliveryOutcome int16

const (
	DeliveryOutcomeUnknown         DeliveryOutcome = 0
	DeliveryOutcomeSent            DeliveryOutcome = 1
	DeliveryOutcomeSkippedDisabled DeliveryOutcome = 2
	DeliveryOutcomeFailed          DeliveryOutcome = 3
)

func (o DeliveryOutcome) String() string {
	switch o {
	case DeliveryOutcomeSent:
		return "sent"
	case DeliveryOutcomeSkippedDisabled:
		return "skipped-disabled"
	case DeliveryOutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type ReminderKind int16

const (
	ReminderKindUnknown  ReminderKind = 0
	ReminderKindReminder ReminderKind = 1
	ReminderKindDueAlert ReminderKind = 2
)

func ReminderKindFromString(raw string) ReminderKind {
	switch strings.TrimSpace(raw) {
	case "reminder":
		return ReminderKindReminder
	case "due_alert":
		return ReminderKindDueAlert
	default:
		return ReminderKindUnknown
	}
}

func (k ReminderKind) String() string {
	switch k {
	case ReminderKindReminder:
		return "reminder"
	case ReminderKindDueAlert:
		return "due_alert"
	default:
		return "unknown"
	}
}
