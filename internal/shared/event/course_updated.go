package event

const CourseUpdatedDestination string = "course_updated"
const CourseUpdatedConsumerNotification string = "course_updated_notification"

type CourseUpdatedMessage struct {
	CourseID   int64   `json:"course_id"`
	CourseName string  `json:"course_name"`
	Summary    string  `json:"summary"`
	Material   bool    `json:"material"`
	StudentIDs []int64 `json:"student_ids"`
}
