package event

const AssignmentUpsertedDestination string = "course_assignment_upserted"
const AssignmentUpsertedConsumerNotification string = "course_assignment_upserted_notification"

type AssignmentUpsertedMessage struct {
	AssignmentID int64   `json:"assignment_id"`
	CourseID     int64   `json:"course_id"`
	CourseName   string  `json:"course_name"`
	Title        string  `json:"title"`
	DueAt        int64   `json:"due_at"`
	StudentIDs   []int64 `json:"student_ids"`
}
