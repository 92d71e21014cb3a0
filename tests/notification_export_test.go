package tests

import (
	"net/http"
	"strings"
	"testing"
)

func TestExportInbox(t *testing.T) {
	// Arrange
	userID, token := studentToken(t)
	broadcastTo(t, []int64{userID}, "Export me", "This notification goes into the export file.")

	// Act
	status, body := doJSON(t, http.MethodGet, "/api/v1/notification/inbox/export", nil, token)

	// Assert
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("export failed: status=%d message=%q", status, errEnv.Message)
	}

	var data struct {
		Key         string `json:"key"`
		DownloadURL string `json:"download_url"`
		Count       int    `json:"count"`
	}
	decodeSuccess(t, body, &data)

	if data.Count != 1 {
		t.Fatalf("expected export count 1, got %d", data.Count)
	}
	if data.Key == "" || !strings.HasSuffix(data.Key, ".json") {
		t.Fatalf("expected a .json object key, got %q", data.Key)
	}
	if !strings.HasPrefix(data.DownloadURL, "http") {
		t.Fatalf("expected a presigned download url, got %q", data.DownloadURL)
	}
}
