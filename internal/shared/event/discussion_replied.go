package event

const DiscussionRepliedDestination string = "discussion_replied"
const DiscussionRepliedConsumerNotification string = "discussion_replied_notification"

type DiscussionRepliedMessage struct {
	DiscussionID    int64   `json:"discussion_id"`
	CourseID        int64   `json:"course_id"`
	ThreadTitle     string  `json:"thread_title"`
	ReplyAuthorID   int64   `json:"reply_author_id"`
	ReplyAuthorName string  `json:"reply_author_name"`
	ReplyExcerpt    string  `json:"reply_excerpt"`
	MentionedIDs    []int64 `json:"mentioned_ids"`
	ParticipantIDs  []int64 `json:"participant_ids"`
}
