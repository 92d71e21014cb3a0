package inbound

import (
	"net/http"

	"github.com/wicaksonoadi/edubell/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/notification/inbox", end.ListInbox)
	r.GET("/api/v1/notification/inbox/unread-count", end.UnreadCount)
	r.PATCH("/api/v1/notification/inbox/:id/read", end.MarkInboxRead)
	r.PUT("/api/v1/notification/inbox/read-all", end.MarkAllInboxRead)
	r.PATCH("/api/v1/notification/inbox/:id/archive", end.ArchiveInbox)
	r.DELETE("/api/v1/notification/inbox/:id", end.DeleteInbox)
	r.GET("/api/v1/notification/inbox/export", end.ExportInbox)

	r.GET("/api/v1/notification/settings", end.GetSettings)
	r.PUT("/api/v1/notification/settings", end.UpdateSettings)

	r.POST("/api/v1/notification/reminders/preview", end.PreviewReminder)
	r.POST("/api/v1/notification/broadcast", end.Broadcast)

	r.GETRaw("/api/v1/notification/stream", http.HandlerFunc(end.StreamNotifications))
}
