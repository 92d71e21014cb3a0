package tests

import (
	"net/http"
	"testing"
	"time"
)

func TestPreviewReminder(t *testing.T) {
	// Arrange
	_, token := studentToken(t)
	dueAt := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Second)
	payload := map[string]any{
		"due_at": dueAt.Format(time.RFC3339),
	}

	// Act
	status, body := doJSON(t, http.MethodPost, "/api/v1/notification/reminders/preview", payload, token)

	// Assert
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("preview reminder failed: status=%d message=%q", status, errEnv.Message)
	}

	var data struct {
		ReminderFireAt  time.Time `json:"reminder_fire_at"`
		DueAlertFireAt  time.Time `json:"due_alert_fire_at"`
		ReminderOverdue bool      `json:"reminder_overdue"`
		DueAlertOverdue bool      `json:"due_alert_overdue"`
	}
	decodeSuccess(t, body, &data)

	if !data.ReminderFireAt.Equal(dueAt.Add(-24 * time.Hour)) {
		t.Fatalf("expected reminder 24h before due date, got %s", data.ReminderFireAt)
	}
	if !data.DueAlertFireAt.Equal(dueAt.Add(-2 * time.Hour)) {
		t.Fatalf("expected due alert 2h before due date, got %s", data.DueAlertFireAt)
	}
	if data.ReminderOverdue || data.DueAlertOverdue {
		t.Fatal("expected no overdue flags for a due date far in the future")
	}
}

func TestPreviewReminderUsesCallerTiming(t *testing.T) {
	// Arrange
	_, token := studentToken(t)
	timingPayload := map[string]any{
		"reminder_timing": map[string]any{
			"assignment_reminder": 12,
			"assignment_due":      1,
		},
	}
	if status, body := doJSON(t, http.MethodPut, "/api/v1/notification/settings", timingPayload, token); status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("update settings failed: status=%d message=%q", status, errEnv.Message)
	}

	dueAt := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Second)
	payload := map[string]any{
		"due_at": dueAt.Format(time.RFC3339),
	}

	// Act
	status, body := doJSON(t, http.MethodPost, "/api/v1/notification/reminders/preview", payload, token)

	// Assert
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("preview reminder failed: status=%d message=%q", status, errEnv.Message)
	}

	var data struct {
		ReminderFireAt time.Time `json:"reminder_fire_at"`
		DueAlertFireAt time.Time `json:"due_alert_fire_at"`
	}
	decodeSuccess(t, body, &data)

	if !data.ReminderFireAt.Equal(dueAt.Add(-12 * time.Hour)) {
		t.Fatalf("expected reminder 12h before due date, got %s", data.ReminderFireAt)
	}
	if !data.DueAlertFireAt.Equal(dueAt.Add(-1 * time.Hour)) {
		t.Fatalf("expected due alert 1h before due date, got %s", data.DueAlertFireAt)
	}
}

func TestPreviewReminderPassedDueDate(t *testing.T) {
	// Arrange
	_, token := studentToken(t)
	payload := map[string]any{
		"due_at": time.Now().UTC().Add(time.Hour).Format(time.RFC3339),
	}

	// Act
	status, body := doJSON(t, http.MethodPost, "/api/v1/notification/reminders/preview", payload, token)

	// Assert
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("preview reminder failed: status=%d message=%q", status, errEnv.Message)
	}

	var data struct {
		ReminderOverdue bool `json:"reminder_overdue"`
		DueAlertOverdue bool `json:"due_alert_overdue"`
	}
	decodeSuccess(t, body, &data)

	if !data.ReminderOverdue {
		t.Fatal("expected reminder overdue when the lead window has already passed")
	}
	if !data.DueAlertOverdue {
		t.Fatal("expected due alert overdue when the lead window has already passed")
	}
}
