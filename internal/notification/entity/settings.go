package entity

// ChannelSettings holds the per-category flags for one delivery channel,
// plus the channel-level master switch.
type ChannelSettings struct {
	Enabled             bool
	AssignmentReminders bool
	AssignmentDue       bool
	AssignmentGraded    bool
	CourseUpdates       bool
	CourseAnnouncements bool
	DiscussionReplies   bool
	SystemUpdates       bool
}

// Allows reports whether this channel may deliver a notification of the
// given type. The master switch dominates every category flag. Types
// without a category flag of their own (general) are always allowed when
// the channel is enabled.
func (cs ChannelSettings) Allows(t Type) bool {
	if !cs.Enabled {
		return false
	}

	switch t {
	case TypeAssignmentReminder:
		return cs.AssignmentReminders
	case TypeAssignmentDue:
		return cs.AssignmentDue
	case TypeAssignmentGraded:
		return cs.AssignmentGraded
	case TypeCourseUpdate, TypeCourseMaterialAdded:
		return cs.CourseUpdates
	case TypeCourseAnnouncement:
		return cs.CourseAnnouncements
	case TypeDiscussionReply, TypeDiscussionMention:
		return cs.DiscussionReplies
	case TypeSystemMaintenance:
		return cs.SystemUpdates
	default:
		return true
	}
}

// ReminderTiming configures how many hours before a due date each
// reminder kind fires.
type ReminderTiming struct {
	AssignmentReminder int
	AssignmentDue      int
}

// Settings is the per-user notification settings document.
type Settings struct {
	Email          ChannelSettings
	Push           ChannelSettings
	InApp          ChannelSettings
	ReminderTiming ReminderTiming
}

// Channel returns the settings block for the given channel.
func (s Settings) Channel(c Channel) ChannelSettings {
	switch c {
	case ChannelEmail:
		return s.Email
	case ChannelPush:
		return s.Push
	case ChannelInApp:
		return s.InApp
	default:
		return ChannelSettings{}
	}
}

// DefaultSettings returns the settings document applied to a user who has
// never saved one: every channel and category on, reminders a day ahead,
// due alerts two hours ahead.
func DefaultSettings() Settings {
	allOn := ChannelSettings{
		Enabled:             true,
		AssignmentReminders: true,
		AssignmentDue:       true,
		AssignmentGraded:    true,
		CourseUpdates:       true,
		CourseAnnouncements: true,
		DiscussionReplies:   true,
		SystemUpdates:       true,
	}

	return Settings{
		Email: allOn,
		Push:  allOn,
		InApp: allOn,
		ReminderTiming: ReminderTiming{
			AssignmentReminder: 24,
			AssignmentDue:      2,
		},
	}
}

// ChannelSettingsPatch is a partial update for one channel block.
// Nil fields keep their current value.
type ChannelSettingsPatch struct {
	Enabled             *bool
	AssignmentReminders *bool
	AssignmentDue       *bool
	AssignmentGraded    *bool
	CourseUpdates       *bool
	CourseAnnouncements *bool
	DiscussionReplies   *bool
	SystemUpdates       *bool
}

// ReminderTimingPatch is a partial update for reminder lead hours.
type ReminderTimingPatch struct {
	AssignmentReminder *int
	AssignmentDue      *int
}

// SettingsPatch is a deep partial update of a Settings document.
type SettingsPatch struct {
	Email          *ChannelSettingsPatch
	Push           *ChannelSettingsPatch
	InApp          *ChannelSettingsPatch
	ReminderTiming *ReminderTimingPatch
}
