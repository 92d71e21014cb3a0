// Package settings manages per-user notification settings documents.
package settings

import (
	"context"
	"log/slog"
	"sync"

	"github.com/samber/lo"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
	"github.com/wicaksonoadi/edubell/internal/notification/schedule"
	"github.com/wicaksonoadi/edubell/internal/pkg/goerror"
)

// Saver persists a settings document after a successful local update.
type Saver interface {
	SaveSettings(ctx context.Context, userID int64, s entity.Settings) error
}

// Manager holds the in-memory settings of every active user and keeps
// them in sync with a persistence collaborator. The in-memory copy is
// authoritative: a failed save keeps the merged document and reports the
// failure to the caller.
type Manager struct {
	mu    sync.RWMutex
	users map[int64]entity.Settings
	saver Saver
}

// NewManager builds a Manager backed by the given saver. A nil saver is
// valid and keeps settings in memory only.
func NewManager(saver Saver) *Manager {
	return &Manager{
		users: make(map[int64]entity.Settings),
		saver: saver,
	}
}

// Hydrate seeds a user's settings from persistence without saving back.
func (m *Manager) Hydrate(userID int64, s entity.Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users[userID] = s
}

// Get returns the user's settings, or the default document when the user
// never saved one.
func (m *Manager) Get(userID int64) entity.Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if s, ok := m.users[userID]; ok {
		return s
	}

	return entity.DefaultSettings()
}

// Update validates and applies a partial update. Validation runs against
// the merged result before anything is stored, so an invalid patch leaves
// the current document untouched. When the save fails, the merged
// document is kept in memory and returned along with the error so the
// caller can tell the update applied but did not persist.
func (m *Manager) Update(ctx context.Context, userID int64, patch entity.SettingsPatch) (entity.Settings, error) {
	m.mu.Lock()

	current, ok := m.users[userID]
	if !ok {
		current = entity.DefaultSettings()
	}

	merged := merge(current, patch)
	if err := validate(merged); err != nil {
		m.mu.Unlock()
		return entity.Settings{}, err
	}

	m.users[userID] = merged
	m.mu.Unlock()

	if m.saver != nil {
		if err := m.saver.SaveSettings(ctx, userID, merged); err != nil {
			slog.WarnContext(ctx, "settings save failed, keeping local copy",
				"user_id", userID, "error", err)
			return merged, goerror.NewServer(err)
		}
	}

	return merged, nil
}

func merge(base entity.Settings, patch entity.SettingsPatch) entity.Settings {
	out := base

	if patch.Email != nil {
		out.Email = mergeChannel(out.Email, *patch.Email)
	}
	if patch.Push != nil {
		out.Push = mergeChannel(out.Push, *patch.Push)
	}
	if patch.InApp != nil {
		out.InApp = mergeChannel(out.InApp, *patch.InApp)
	}
	if patch.ReminderTiming != nil {
		out.ReminderTiming.AssignmentReminder = lo.FromPtrOr(patch.ReminderTiming.AssignmentReminder, out.ReminderTiming.AssignmentReminder)
		out.ReminderTiming.AssignmentDue = lo.FromPtrOr(patch.ReminderTiming.AssignmentDue, out.ReminderTiming.AssignmentDue)
	}

	return out
}

func mergeChannel(base entity.ChannelSettings, patch entity.ChannelSettingsPatch) entity.ChannelSettings {
	base.Enabled = lo.FromPtrOr(patch.Enabled, base.Enabled)
	base.AssignmentReminders = lo.FromPtrOr(patch.AssignmentReminders, base.AssignmentReminders)
	base.AssignmentDue = lo.FromPtrOr(patch.AssignmentDue, base.AssignmentDue)
	base.AssignmentGraded = lo.FromPtrOr(patch.AssignmentGraded, base.AssignmentGraded)
	base.CourseUpdates = lo.FromPtrOr(patch.CourseUpdates, base.CourseUpdates)
	base.CourseAnnouncements = lo.FromPtrOr(patch.CourseAnnouncements, base.CourseAnnouncements)
	base.DiscussionReplies = lo.FromPtrOr(patch.DiscussionReplies, base.DiscussionReplies)
	base.SystemUpdates = lo.FromPtrOr(patch.SystemUpdates, base.SystemUpdates)

	return base
}

func validate(s entity.Settings) error {
	t := s.ReminderTiming

	if t.AssignmentReminder < schedule.MinReminderLead || t.AssignmentReminder > schedule.MaxReminderLead {
		return goerror.NewInvalidInput(nil, "assignment_reminder", "must be between 1 and 168 hours")
	}

	if t.AssignmentDue < schedule.MinDueLead || t.AssignmentDue > schedule.MaxDueLead {
		return goerror.NewInvalidInput(nil, "assignment_due", "must be between 1 and 24 hours")
	}

	return nil
}
