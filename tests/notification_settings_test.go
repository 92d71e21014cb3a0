package tests

import (
	"net/http"
	"testing"
)

func TestSettingsDefaults(t *testing.T) {
	// Arrange
	_, token := studentToken(t)

	// Act
	status, body := doJSON(t, http.MethodGet, "/api/v1/notification/settings", nil, token)

	// Assert
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("get settings failed: status=%d message=%q", status, errEnv.Message)
	}

	var data settingsData
	decodeSuccess(t, body, &data)
	if !data.Email.Enabled || !data.Push.Enabled || !data.InApp.Enabled {
		t.Fatalf("expected all channels enabled by default, got %+v", data)
	}
	if data.ReminderTiming.AssignmentReminder != 24 {
		t.Fatalf("expected default assignment reminder lead 24, got %d", data.ReminderTiming.AssignmentReminder)
	}
	if data.ReminderTiming.AssignmentDue != 2 {
		t.Fatalf("expected default due alert lead 2, got %d", data.ReminderTiming.AssignmentDue)
	}
}

func TestSettingsPartialUpdate(t *testing.T) {
	// Arrange
	_, token := studentToken(t)
	payload := map[string]any{
		"email": map[string]any{
			"assignment_due": false,
		},
	}

	// Act
	status, body := doJSON(t, http.MethodPut, "/api/v1/notification/settings", payload, token)

	// Assert
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("update settings failed: status=%d message=%q", status, errEnv.Message)
	}

	var data settingsData
	decodeSuccess(t, body, &data)
	if data.Email.AssignmentDue {
		t.Fatal("expected email assignment_due to be disabled")
	}
	if !data.Email.Enabled || !data.Email.AssignmentReminders {
		t.Fatal("expected untouched email fields to keep their defaults")
	}
	if !data.Push.Enabled {
		t.Fatal("expected push settings to be untouched")
	}
}

func TestSettingsTimingUpdate(t *testing.T) {
	// Arrange
	_, token := studentToken(t)
	payload := map[string]any{
		"reminder_timing": map[string]any{
			"assignment_reminder": 48,
			"assignment_due":      4,
		},
	}

	// Act
	status, body := doJSON(t, http.MethodPut, "/api/v1/notification/settings", payload, token)

	// Assert
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("update settings failed: status=%d message=%q", status, errEnv.Message)
	}

	var data settingsData
	decodeSuccess(t, body, &data)
	if data.ReminderTiming.AssignmentReminder != 48 || data.ReminderTiming.AssignmentDue != 4 {
		t.Fatalf("expected timing 48/4, got %d/%d",
			data.ReminderTiming.AssignmentReminder, data.ReminderTiming.AssignmentDue)
	}
}

func TestSettingsInvalidTimingRejectsPatch(t *testing.T) {
	// Arrange
	_, token := studentToken(t)
	payload := map[string]any{
		"push": map[string]any{
			"enabled": false,
		},
		"reminder_timing": map[string]any{
			"assignment_due": 48,
		},
	}

	// Act
	status, _ := doJSON(t, http.MethodPut, "/api/v1/notification/settings", payload, token)

	// Assert
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", status)
	}

	getStatus, getBody := doJSON(t, http.MethodGet, "/api/v1/notification/settings", nil, token)
	if getStatus != http.StatusOK {
		t.Fatalf("get settings failed: status=%d", getStatus)
	}
	var data settingsData
	decodeSuccess(t, getBody, &data)
	if !data.Push.Enabled {
		t.Fatal("expected rejected patch to leave push settings untouched")
	}
	if data.ReminderTiming.AssignmentDue != 2 {
		t.Fatalf("expected due alert lead to keep its default, got %d", data.ReminderTiming.AssignmentDue)
	}
}
