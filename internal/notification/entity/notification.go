package entity

import "time"

// Notification is a single inbox entry owned by one user.
type Notification struct {
	ID         int64
	UserID     int64
	Title      string
	Message    string
	Type       Type
	Priority   Priority
	IsRead     bool
	IsArchived bool
	ActionURL  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreateNotification carries caller-supplied fields for a new notification.
// ID, timestamps, and read/archived state are assigned by the store.
type CreateNotification struct {
	UserID    int64
	Title     string
	Message   string
	Type      Type
	Priority  Priority
	ActionURL string
}

// Filter narrows an inbox view. Zero values ("", TypeUnknown,
// PriorityUnknown) act as the "all" sentinel and match everything.
type Filter struct {
	SearchText      string
	Type            Type
	Priority        Priority
	IncludeArchived bool
}

// DeliveryReport maps each channel to its dispatch outcome for one notification.
type DeliveryReport map[Channel]DeliveryOutcome
