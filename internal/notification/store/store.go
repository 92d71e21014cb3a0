// Package store holds the in-memory authoritative notification state for
// a single user: the ordered inbox list, the derived unread count, and
// the stream connection flag.
package store

import (
	"sync"

	"go.uber.org/atomic"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
	"github.com/wicaksonoadi/edubell/internal/pkg/clock"
	"github.com/wicaksonoadi/edubell/internal/pkg/uid"
)

// Store is the per-user inbox state. All mutators are atomic: a single
// mutex guards the list and the unread count together so no caller can
// observe them mid-transition.
type Store struct {
	mu       sync.Mutex
	items    []*entity.Notification // most-recent-first, head insert
	unread   int
	hydrated bool

	connected *atomic.Bool

	number uid.NumberID
	clock  clock.Clocker
}

// New creates an empty Store for one user.
func New(number uid.NumberID, clk clock.Clocker) *Store {
	return &Store{
		connected: atomic.NewBool(false),
		number:    number,
		clock:     clk,
	}
}

// Hydrate replaces the store contents with a persisted snapshot, given
// most-recent-first, and recomputes the unread count from it.
func (s *Store) Hydrate(items []entity.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]*entity.Notification, 0, len(items))
	s.unread = 0
	for i := range items {
		item := items[i]
		s.items = append(s.items, &item)
		if !item.IsRead {
			s.unread++
		}
	}
	s.hydrated = true
}

// Hydrated reports whether a persisted snapshot has been loaded. A false
// result means the store still needs hydration before it can be trusted
// as the user's full history.
func (s *Store) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.hydrated
}

// Add assigns an id and timestamps, inserts the notification at the head
// of the list, and increments the unread count. Caller-supplied read or
// archived state is ignored; new notifications are always unread and
// active.
func (s *Store) Add(in entity.CreateNotification) entity.Notification {
	now := s.clock.Now()
	n := &entity.Notification{
		ID:        s.number.Generate(),
		UserID:    in.UserID,
		Title:     in.Title,
		Message:   in.Message,
		Type:      in.Type,
		Priority:  in.Priority,
		ActionURL: in.ActionURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append([]*entity.Notification{n}, s.items...)
	s.unread++

	return *n
}

// MarkRead marks one notification read. It reports whether the id exists;
// marking an already-read notification is a no-op that still reports true.
func (s *Store) MarkRead(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.find(id)
	if n == nil {
		return false
	}
	if n.IsRead {
		return true
	}

	n.IsRead = true
	n.UpdatedAt = s.clock.Now()
	if s.unread > 0 {
		s.unread--
	}
	return true
}

// MarkAllRead marks every unread notification read and returns the ids
// that changed.
func (s *Store) MarkAllRead() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var changed []int64
	now := s.clock.Now()
	for _, n := range s.items {
		if n.IsRead {
			continue
		}
		n.IsRead = true
		n.UpdatedAt = now
		changed = append(changed, n.ID)
	}
	s.unread = 0
	return changed
}

// Archive moves one notification to the archived view without touching
// its read state or the unread count. It reports whether the id exists.
func (s *Store) Archive(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.find(id)
	if n == nil {
		return false
	}
	if !n.IsArchived {
		n.IsArchived = true
		n.UpdatedAt = s.clock.Now()
	}
	return true
}

// Delete removes one notification. Deleting an unread notification
// decrements the unread count, floored at zero. It reports whether the
// id existed.
func (s *Store) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.items {
		if n.ID != id {
			continue
		}
		if !n.IsRead && s.unread > 0 {
			s.unread--
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		return true
	}
	return false
}

// Get returns a copy of one notification by id.
func (s *Store) Get(id int64) (entity.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n := s.find(id); n != nil {
		return *n, true
	}
	return entity.Notification{}, false
}

// List returns a most-recent-first snapshot of the inbox. Mutating the
// returned slice does not affect the store.
func (s *Store) List() []entity.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.Notification, 0, len(s.items))
	for _, n := range s.items {
		out = append(out, *n)
	}
	return out
}

// UnreadCount returns the number of unread notifications.
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.unread
}

// Len returns the number of notifications, archived included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}

// SetConnected records whether the user currently holds a live stream.
func (s *Store) SetConnected(v bool) {
	s.connected.Store(v)
}

// Connected reports whether the user currently holds a live stream.
func (s *Store) Connected() bool {
	return s.connected.Load()
}

func (s *Store) find(id int64) *entity.Notification {
	for _, n := range s.items {
		if n.ID == id {
			return n
		}
	}
	return nil
}
