package tests

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/wicaksonoadi/edubell/internal/pkg/clock"
	"github.com/wicaksonoadi/edubell/internal/pkg/jwt"
	"github.com/wicaksonoadi/edubell/internal/pkg/uid"
)

const adminUserID = int64(1)

var userIDSeq atomic.Int64

// uniqueUserID returns a user id no other test has touched, so the caller
// starts with an empty inbox and default settings.
func uniqueUserID() int64 {
	return time.Now().UnixNano() + userIDSeq.Add(1)
}

func signToken(t *testing.T, userID int64, email, role string) string {
	t.Helper()

	secret := os.Getenv("EDUBELL_JWT_SECRET")
	if secret == "" {
		secret = "ad8a080a97ddbe96ada9e7a47ea0cd9a6d2e8ace18d4b517d574da0cd24ba146"
	}

	signer, err := jwt.NewHS512(jwt.Config{
		Secret:     []byte(secret),
		Issuer:     "edubell",
		Audiences:  []string{"edubell-web", "edubell-mobile"},
		TTLMinutes: 60 * time.Minute,
		Clock:      clock.New(),
		UUID:       uid.NewUUID(),
	})
	if err != nil {
		t.Fatalf("build token signer: %v", err)
	}

	token, err := signer.Generate(userID, email, role)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	return token
}

func studentToken(t *testing.T) (int64, string) {
	t.Helper()

	id := uniqueUserID()

	return id, signToken(t, id, fmt.Sprintf("student-%d@example.com", id), "student")
}

func adminToken(t *testing.T) string {
	t.Helper()

	return signToken(t, adminUserID, "admin@edubell.dev", jwt.RoleAdmin)
}

type notificationData struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Type       string    `json:"type"`
	Priority   string    `json:"priority"`
	IsRead     bool      `json:"is_read"`
	IsArchived bool      `json:"is_archived"`
	ActionURL  string    `json:"action_url"`
	CreatedAt  time.Time `json:"created_at"`
}

type inboxData struct {
	Notifications []notificationData `json:"notifications"`
	UnreadCount   int                `json:"unread_count"`
}

type settingsData struct {
	Email          channelData `json:"email"`
	Push           channelData `json:"push"`
	InApp          channelData `json:"in_app"`
	ReminderTiming timingData  `json:"reminder_timing"`
}

type channelData struct {
	Enabled             bool `json:"enabled"`
	AssignmentReminders bool `json:"assignment_reminders"`
	AssignmentDue       bool `json:"assignment_due"`
	AssignmentGraded    bool `json:"assignment_graded"`
	CourseUpdates       bool `json:"course_updates"`
	CourseAnnouncements bool `json:"course_announcements"`
	DiscussionReplies   bool `json:"discussion_replies"`
	SystemUpdates       bool `json:"system_updates"`
}

type timingData struct {
	AssignmentReminder int `json:"assignment_reminder"`
	AssignmentDue      int `json:"assignment_due"`
}

func listInbox(t *testing.T, token string, query url.Values) inboxData {
	t.Helper()

	path := "/api/v1/notification/inbox"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	status, body := doJSON(t, http.MethodGet, path, nil, token)
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("list inbox failed: status=%d message=%q", status, errEnv.Message)
	}

	var data inboxData
	decodeSuccess(t, body, &data)

	return data
}

// broadcastTo seeds the target users' inboxes through the admin endpoint.
func broadcastTo(t *testing.T, userIDs []int64, title, message string) {
	t.Helper()

	payload := map[string]any{
		"user_ids": userIDs,
		"title":    title,
		"message":  message,
		"type":     "course_announcement",
		"priority": "medium",
	}

	status, body := doJSON(t, http.MethodPost, "/api/v1/notification/broadcast", payload, adminToken(t))
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("broadcast failed: status=%d message=%q", status, errEnv.Message)
	}
}
