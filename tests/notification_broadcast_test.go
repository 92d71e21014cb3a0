package tests

import (
	"net/http"
	"testing"
)

func TestBroadcastCreatesNotifications(t *testing.T) {
	// Arrange
	firstID, firstToken := studentToken(t)
	secondID, secondToken := studentToken(t)
	payload := map[string]any{
		"user_ids": []int64{firstID, secondID},
		"title":    "Scheduled maintenance",
		"message":  "EduBell will be unavailable on Saturday night.",
		"type":     "system_maintenance",
		"priority": "high",
	}

	// Act
	status, body := doJSON(t, http.MethodPost, "/api/v1/notification/broadcast", payload, adminToken(t))

	// Assert
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("broadcast failed: status=%d message=%q", status, errEnv.Message)
	}

	var data struct {
		Created int `json:"created"`
	}
	decodeSuccess(t, body, &data)
	if data.Created != 2 {
		t.Fatalf("expected 2 created notifications, got %d", data.Created)
	}

	for _, token := range []string{firstToken, secondToken} {
		inbox := listInbox(t, token, nil)
		if len(inbox.Notifications) != 1 {
			t.Fatalf("expected 1 notification in recipient inbox, got %d", len(inbox.Notifications))
		}
		if inbox.Notifications[0].Type != "system_maintenance" {
			t.Fatalf("expected system_maintenance type, got %q", inbox.Notifications[0].Type)
		}
		if inbox.Notifications[0].Priority != "high" {
			t.Fatalf("expected high priority, got %q", inbox.Notifications[0].Priority)
		}
	}
}

func TestBroadcastForbiddenForStudent(t *testing.T) {
	// Arrange
	userID, token := studentToken(t)
	payload := map[string]any{
		"user_ids": []int64{userID},
		"title":    "Not allowed",
		"message":  "Students cannot broadcast.",
		"type":     "course_announcement",
	}

	// Act
	status, _ := doJSON(t, http.MethodPost, "/api/v1/notification/broadcast", payload, token)

	// Assert
	if status != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", status)
	}
}

func TestBroadcastValidation(t *testing.T) {
	// Arrange
	payload := map[string]any{
		"user_ids": []int64{},
		"title":    "x",
		"message":  "Too short title and no recipients.",
		"type":     "course_announcement",
	}

	// Act
	status, _ := doJSON(t, http.MethodPost, "/api/v1/notification/broadcast", payload, adminToken(t))

	// Assert
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", status)
	}
}

func TestBroadcastUnsupportedType(t *testing.T) {
	// Arrange
	userID, _ := studentToken(t)
	payload := map[string]any{
		"user_ids": []int64{userID},
		"title":    "Wrong type",
		"message":  "Broadcasts only carry announcement types.",
		"type":     "assignment_graded",
	}

	// Act
	status, _ := doJSON(t, http.MethodPost, "/api/v1/notification/broadcast", payload, adminToken(t))

	// Assert
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", status)
	}
}
