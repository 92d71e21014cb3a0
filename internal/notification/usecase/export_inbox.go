package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/wicaksonoadi/edubell/internal/pkg/goerror"
	"github.com/wicaksonoadi/edubell/internal/pkg/storage"
	"github.com/wicaksonoadi/edubell/internal/pkg/valueobject"
)

type ExportInboxOutput struct {
	Key         string
	DownloadURL string
	Count       int
}

// ExportInbox snapshots the caller's full inbox, including archived
// notifications, to object storage and returns a signed download URL.
func (s *Usecase) ExportInbox(ctx context.Context) (*ExportInboxOutput, error) {
	ctx, span := s.startSpan(ctx, "ExportInbox")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	st, err := s.userStore(ctx, clm.UserID)
	if err != nil {
		return nil, err
	}

	items := st.List()
	payload, err := json.Marshal(valueobject.JSONMap{
		"user_id":       clm.UserID,
		"exported_at":   s.clock.Now().UTC(),
		"count":         len(items),
		"notifications": items,
	})
	if err != nil {
		return nil, goerror.NewServer(err)
	}

	bucket := strings.TrimSpace(s.cfg.GetString("modules.notification.export_bucket"))
	key := fmt.Sprintf("%d/%s.json", clm.UserID, s.uuid.Generate())

	_, err = s.exports.PutObject(ctx, bucket, key, bytes.NewReader(payload), storage.PutOptions{
		Size:        int64(len(payload)),
		ContentType: "application/json",
		Metadata:    map[string]string{"user_id": strconv.FormatInt(clm.UserID, 10)},
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to upload inbox export", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	expiry := s.cfg.GetMinute("modules.notification.export_url_expiry_minutes")
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}

	url, err := s.exports.PresignGet(ctx, bucket, key, expiry)
	if err != nil {
		slog.ErrorContext(ctx, "failed to presign inbox export", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ExportInboxOutput{Key: key, DownloadURL: url, Count: len(items)}, nil
}
