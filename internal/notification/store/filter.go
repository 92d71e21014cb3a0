package store

import (
	"strings"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
)

// ApplyFilter produces a filtered view over an inbox snapshot. It never
// mutates its input and preserves the input ordering.
//
// Search text matches case-insensitively against title or message. A zero
// Type or Priority matches everything. The archived flag selects an
// exclusive view: false returns only active notifications, true returns
// only archived ones.
func ApplyFilter(items []entity.Notification, f entity.Filter) []entity.Notification {
	search := strings.ToLower(strings.TrimSpace(f.SearchText))

	out := make([]entity.Notification, 0, len(items))
	for _, n := range items {
		if n.IsArchived != f.IncludeArchived {
			continue
		}
		if f.Type != entity.TypeUnknown && n.Type != f.Type {
			continue
		}
		if f.Priority != entity.PriorityUnknown && n.Priority != f.Priority {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(n.Title), search) &&
			!strings.Contains(strings.ToLower(n.Message), search) {
			continue
		}
		out = append(out, n)
	}
	return out
}
