package inbound

import (
	"github.com/wicaksonoadi/edubell/internal/notification/usecase"
	"github.com/wicaksonoadi/edubell/internal/pkg/goerror"
	"github.com/wicaksonoadi/edubell/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// ListInbox returns the caller's notifications after filtering. The
// archived query flag switches between the active and archived views.
func (h *HTTPEndpoint) ListInbox(r *router.Request) (any, error) {
	archived, err := r.GetQueryBool("archived")
	if err != nil {
		return nil, goerror.NewInvalidFormat("archived must be a boolean")
	}

	out, err := h.uc.ListInbox(r.Context(), usecase.ListInboxInput{
		Search:   r.GetQuery("search"),
		Type:     r.GetQuery("type"),
		Priority: r.GetQuery("priority"),
		Archived: archived,
	})
	if err != nil {
		return nil, err
	}

	resp := make([]NotificationResponse, 0, len(out.Items))
	for _, item := range out.Items {
		resp = append(resp, toNotificationResponse(item))
	}

	return NotificationsResponse{Notifications: resp, UnreadCount: out.UnreadCount}, nil
}

// UnreadCount returns the badge counter for the caller's inbox.
func (h *HTTPEndpoint) UnreadCount(r *router.Request) (any, error) {
	count, err := h.uc.UnreadCount(r.Context())
	if err != nil {
		return nil, err
	}

	return UnreadCountResponse{UnreadCount: count}, nil
}

func (h *HTTPEndpoint) MarkInboxRead(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidFormat("notification id must be a number")
	}

	return nil, h.uc.MarkInboxRead(r.Context(), usecase.MarkInboxReadInput{ID: id})
}

func (h *HTTPEndpoint) MarkAllInboxRead(r *router.Request) (any, error) {
	return nil, h.uc.MarkAllInboxRead(r.Context())
}

func (h *HTTPEndpoint) ArchiveInbox(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidFormat("notification id must be a number")
	}

	return nil, h.uc.ArchiveInbox(r.Context(), usecase.ArchiveInboxInput{ID: id})
}

func (h *HTTPEndpoint) DeleteInbox(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidFormat("notification id must be a number")
	}

	return nil, h.uc.DeleteInbox(r.Context(), usecase.DeleteInboxInput{ID: id})
}

func (h *HTTPEndpoint) GetSettings(r *router.Request) (any, error) {
	s, err := h.uc.GetSettings(r.Context())
	if err != nil {
		return nil, err
	}

	return toSettingsResponse(*s), nil
}

// UpdateSettings applies a partial settings document. Absent fields keep
// their current values; the merged result is returned.
func (h *HTTPEndpoint) UpdateSettings(r *router.Request) (any, error) {
	var req SettingsUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	s, err := h.uc.UpdateSettings(r.Context(), usecase.UpdateSettingsInput{
		Patch: toSettingsPatch(req),
	})
	if err != nil {
		return nil, err
	}

	return toSettingsResponse(*s), nil
}

func (h *HTTPEndpoint) PreviewReminder(r *router.Request) (any, error) {
	var req PreviewReminderRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	plan, err := h.uc.PreviewReminder(r.Context(), usecase.PreviewReminderInput{DueAt: req.DueAt})
	if err != nil {
		return nil, err
	}

	return ReminderPlanResponse(*plan), nil
}

func (h *HTTPEndpoint) Broadcast(r *router.Request) (any, error) {
	var req BroadcastRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.Broadcast(r.Context(), usecase.BroadcastInput{
		UserIDs:   req.UserIDs,
		Title:     req.Title,
		Message:   req.Message,
		Type:      req.Type,
		Priority:  req.Priority,
		ActionURL: req.ActionURL,
	})
	if err != nil {
		return nil, err
	}

	return BroadcastResponse{Created: out.Created}, nil
}

func (h *HTTPEndpoint) ExportInbox(r *router.Request) (any, error) {
	out, err := h.uc.ExportInbox(r.Context())
	if err != nil {
		return nil, err
	}

	return ExportInboxResponse{Key: out.Key, DownloadURL: out.DownloadURL, Count: out.Count}, nil
}
