package inbound

import (
	"time"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
)

type NotificationResponse struct {
	ID         int64     `json:"id,string"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Type       string    `json:"type"`
	Priority   string    `json:"priority"`
	IsRead     bool      `json:"is_read"`
	IsArchived bool      `json:"is_archived"`
	ActionURL  string    `json:"action_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type NotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

type ChannelSettingsResponse struct {
	Enabled             bool `json:"enabled"`
	AssignmentReminders bool `json:"assignment_reminders"`
	AssignmentDue       bool `json:"assignment_due"`
	AssignmentGraded    bool `json:"assignment_graded"`
	CourseUpdates       bool `json:"course_updates"`
	CourseAnnouncements bool `json:"course_announcements"`
	DiscussionReplies   bool `json:"discussion_replies"`
	SystemUpdates       bool `json:"system_updates"`
}

type ReminderTimingResponse struct {
	AssignmentReminder int `json:"assignment_reminder"`
	AssignmentDue      int `json:"assignment_due"`
}

type SettingsResponse struct {
	Email          ChannelSettingsResponse `json:"email"`
	Push           ChannelSettingsResponse `json:"push"`
	InApp          ChannelSettingsResponse `json:"in_app"`
	ReminderTiming ReminderTimingResponse  `json:"reminder_timing"`
}

type ChannelSettingsRequest struct {
	Enabled             *bool `json:"enabled"`
	AssignmentReminders *bool `json:"assignment_reminders"`
	AssignmentDue       *bool `json:"assignment_due"`
	AssignmentGraded    *bool `json:"assignment_graded"`
	CourseUpdates       *bool `json:"course_updates"`
	CourseAnnouncements *bool `json:"course_announcements"`
	DiscussionReplies   *bool `json:"discussion_replies"`
	SystemUpdates       *bool `json:"system_updates"`
}

type ReminderTimingRequest struct {
	AssignmentReminder *int `json:"assignment_reminder"`
	AssignmentDue      *int `json:"assignment_due"`
}

type SettingsUpdateRequest struct {
	Email          *ChannelSettingsRequest `json:"email"`
	Push           *ChannelSettingsRequest `json:"push"`
	InApp          *ChannelSettingsRequest `json:"in_app"`
	ReminderTiming *ReminderTimingRequest  `json:"reminder_timing"`
}

type PreviewReminderRequest struct {
	DueAt time.Time `json:"due_at"`
}

type ReminderPlanResponse struct {
	ReminderFireAt  time.Time `json:"reminder_fire_at"`
	DueAlertFireAt  time.Time `json:"due_alert_fire_at"`
	ReminderOverdue bool      `json:"reminder_overdue"`
	DueAlertOverdue bool      `json:"due_alert_overdue"`
}

type BroadcastRequest struct {
	UserIDs   []int64 `json:"user_ids"`
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	Type      string  `json:"type"`
	Priority  string  `json:"priority"`
	ActionURL string  `json:"action_url"`
}

type BroadcastResponse struct {
	Created int `json:"created"`
}

type ExportInboxResponse struct {
	Key         string `json:"key"`
	DownloadURL string `json:"download_url"`
	Count       int    `json:"count"`
}

func toNotificationResponse(n entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:         n.ID,
		Title:      n.Title,
		Message:    n.Message,
		Type:       n.Type.String(),
		Priority:   n.Priority.String(),
		IsRead:     n.IsRead,
		IsArchived: n.IsArchived,
		ActionURL:  n.ActionURL,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}

func toSettingsResponse(s entity.Settings) SettingsResponse {
	return SettingsResponse{
		Email:          toChannelSettingsResponse(s.Email),
		Push:           toChannelSettingsResponse(s.Push),
		InApp:          toChannelSettingsResponse(s.InApp),
		ReminderTiming: ReminderTimingResponse(s.ReminderTiming),
	}
}

func toChannelSettingsResponse(cs entity.ChannelSettings) ChannelSettingsResponse {
	return ChannelSettingsResponse(cs)
}

func toChannelSettingsPatch(req *ChannelSettingsRequest) *entity.ChannelSettingsPatch {
	if req == nil {
		return nil
	}

	return &entity.ChannelSettingsPatch{
		Enabled:             req.Enabled,
		AssignmentReminders: req.AssignmentReminders,
		AssignmentDue:       req.AssignmentDue,
		AssignmentGraded:    req.AssignmentGraded,
		CourseUpdates:       req.CourseUpdates,
		CourseAnnouncements: req.CourseAnnouncements,
		DiscussionReplies:   req.DiscussionReplies,
		SystemUpdates:       req.SystemUpdates,
	}
}

func toSettingsPatch(req SettingsUpdateRequest) entity.SettingsPatch {
	return entity.SettingsPatch{
		Email:          toChannelSettingsPatch(req.Email),
		Push:           toChannelSettingsPatch(req.Push),
		InApp:          toChannelSettingsPatch(req.InApp),
		ReminderTiming: toReminderTimingPatch(req.ReminderTiming),
	}
}

func toReminderTimingPatch(req *ReminderTimingRequest) *entity.ReminderTimingPatch {
	if req == nil {
		return nil
	}

	return &entity.ReminderTimingPatch{
		AssignmentReminder: req.AssignmentReminder,
		AssignmentDue:      req.AssignmentDue,
	}
}
