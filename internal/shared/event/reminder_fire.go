package event

const ReminderFireDestination string = "notification_reminder_fire"
const ReminderFireConsumerNotification string = "notification_reminder_fire_notification"

type ReminderFireMessage struct {
	ReminderID   int64  `json:"reminder_id"`
	UserID       int64  `json:"user_id"`
	AssignmentID int64  `json:"assignment_id"`
	Kind         string `json:"kind"`
	Title        string `json:"title"`
	Message      string `json:"message"`
	DueAt        int64  `json:"due_at"`
	Overdue      bool   `json:"overdue"`
}
