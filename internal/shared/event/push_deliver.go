package event

const PushDeliverDestination string = "notification_push_deliver"

type PushDeliverMessage struct {
	NotificationID     int64  `json:"notification_id,string"`
	UserID             int64  `json:"user_id"`
	Title              string `json:"title"`
	Body               string `json:"body"`
	RequireInteraction bool   `json:"require_interaction"`
}
