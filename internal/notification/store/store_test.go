package store

import (
	"testing"
	"time"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
	"github.com/wicaksonoadi/edubell/internal/pkg/clock"
)

type seqID struct {
	next int64
}

func (s *seqID) Generate() int64 {
	s.next++
	return s.next
}

func newTestStore() *Store {
	return New(&seqID{}, clock.Static{T: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)})
}

func addOne(s *Store, title string) entity.Notification {
	return s.Add(entity.CreateNotification{
		UserID:   7,
		Title:    title,
		Message:  "body of " + title,
		Type:     entity.TypeGeneral,
		Priority: entity.PriorityLow,
	})
}

func TestStoreAdd(t *testing.T) {

	t.Run("AssignsIDAndTimestampsAndCounts", func(t *testing.T) {

		// Arrange
		s := newTestStore()

		// Act
		n := addOne(s, "first")

		// Assert
		if n.ID == 0 {
			t.Fatalf("expected assigned id")
		}
		if n.CreatedAt.IsZero() || !n.CreatedAt.Equal(n.UpdatedAt) {
			t.Fatalf("expected createdAt == updatedAt, got %v / %v", n.CreatedAt, n.UpdatedAt)
		}
		if n.IsRead || n.IsArchived {
			t.Fatalf("expected new notification unread and active")
		}
		if got := s.UnreadCount(); got != 1 {
			t.Fatalf("expected unread count 1, got %d", got)
		}
	})

	t.Run("InsertsAtHead", func(t *testing.T) {

		// Arrange
		s := newTestStore()
		addOne(s, "older")
		addOne(s, "newer")

		// Act
		list := s.List()

		// Assert
		if len(list) != 2 {
			t.Fatalf("expected 2 notifications, got %d", len(list))
		}
		if list[0].Title != "newer" || list[1].Title != "older" {
			t.Fatalf("expected most-recent-first ordering, got %q then %q", list[0].Title, list[1].Title)
		}
	})
}

func TestStoreMarkRead(t *testing.T) {

	t.Run("DecrementsUnread", func(t *testing.T) {

		// Arrange
		s := newTestStore()
		n := addOne(s, "one")

		// Act
		ok := s.MarkRead(n.ID)

		// Assert
		if !ok {
			t.Fatalf("expected markRead to report existing id")
		}
		if got := s.UnreadCount(); got != 0 {
			t.Fatalf("expected unread count 0, got %d", got)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {

		// Arrange
		s := newTestStore()
		n := addOne(s, "one")
		addOne(s, "two")

		// Act
		s.MarkRead(n.ID)
		s.MarkRead(n.ID)

		// Assert
		if got := s.UnreadCount(); got != 1 {
			t.Fatalf("expected unread count 1 after double markRead, got %d", got)
		}
	})

	t.Run("AbsentIDIsNoOp", func(t *testing.T) {

		// Arrange
		s := newTestStore()
		addOne(s, "one")

		// Act
		ok := s.MarkRead(999)

		// Assert
		if ok {
			t.Fatalf("expected markRead to report missing id")
		}
		if got := s.UnreadCount(); got != 1 {
			t.Fatalf("expected unread count unchanged, got %d", got)
		}
	})
}

func TestStoreMarkAllRead(t *testing.T) {

	// Arrange
	s := newTestStore()
	addOne(s, "one")
	addOne(s, "two")
	addOne(s, "three")

	// Act
	changed := s.MarkAllRead()

	// Assert
	if len(changed) != 3 {
		t.Fatalf("expected 3 changed ids, got %d", len(changed))
	}
	if got := s.UnreadCount(); got != 0 {
		t.Fatalf("expected unread count 0, got %d", got)
	}
	for _, n := range s.List() {
		if !n.IsRead {
			t.Fatalf("expected notification %d read", n.ID)
		}
	}
}

func TestStoreArchive(t *testing.T) {

	t.Run("DoesNotTouchReadStateOrCount", func(t *testing.T) {

		// Arrange
		s := newTestStore()
		n := addOne(s, "one")

		// Act
		ok := s.Archive(n.ID)

		// Assert
		if !ok {
			t.Fatalf("expected archive to report existing id")
		}
		got, _ := s.Get(n.ID)
		if !got.IsArchived {
			t.Fatalf("expected notification archived")
		}
		if got.IsRead {
			t.Fatalf("expected read state untouched")
		}
		if c := s.UnreadCount(); c != 1 {
			t.Fatalf("expected unread count 1, got %d", c)
		}
	})

	t.Run("AbsentIDIsNoOp", func(t *testing.T) {

		// Arrange
		s := newTestStore()

		// Act
		ok := s.Archive(42)

		// Assert
		if ok {
			t.Fatalf("expected archive to report missing id")
		}
	})
}

func TestStoreDelete(t *testing.T) {

	t.Run("UnreadDecrementsCount", func(t *testing.T) {

		// Arrange
		s := newTestStore()
		n := addOne(s, "one")

		// Act
		ok := s.Delete(n.ID)

		// Assert
		if !ok {
			t.Fatalf("expected delete to report existing id")
		}
		if got := s.UnreadCount(); got != 0 {
			t.Fatalf("expected unread count 0, got %d", got)
		}
		if got := s.Len(); got != 0 {
			t.Fatalf("expected empty store, got %d", got)
		}
	})

	t.Run("ReadLeavesCountUnchanged", func(t *testing.T) {

		// Arrange
		s := newTestStore()
		n := addOne(s, "one")
		addOne(s, "two")
		s.MarkRead(n.ID)

		// Act
		s.Delete(n.ID)

		// Assert
		if got := s.UnreadCount(); got != 1 {
			t.Fatalf("expected unread count 1, got %d", got)
		}
	})
}

func TestStoreUnreadCountMatchesList(t *testing.T) {

	// Arrange
	s := newTestStore()
	a := addOne(s, "a")
	b := addOne(s, "b")
	addOne(s, "c")

	// Act
	s.MarkRead(a.ID)
	s.Archive(b.ID)
	s.Delete(a.ID)

	// Assert
	unreadInList := 0
	for _, n := range s.List() {
		if !n.IsRead {
			unreadInList++
		}
	}
	if got := s.UnreadCount(); got != unreadInList {
		t.Fatalf("expected unread count %d to match list, got %d", unreadInList, got)
	}
	if got := s.UnreadCount(); got < 0 {
		t.Fatalf("unread count went negative: %d", got)
	}
}

func TestStoreScenarioMarkAllThenDelete(t *testing.T) {

	// Arrange
	s := newTestStore()
	s.Add(entity.CreateNotification{UserID: 7, Title: "due", Type: entity.TypeAssignmentDue, Priority: entity.PriorityHigh})
	s.Add(entity.CreateNotification{UserID: 7, Title: "update", Type: entity.TypeCourseUpdate, Priority: entity.PriorityMedium})
	last := s.Add(entity.CreateNotification{UserID: 7, Title: "note", Type: entity.TypeGeneral, Priority: entity.PriorityLow})

	if got := s.UnreadCount(); got != 3 {
		t.Fatalf("expected unread count 3, got %d", got)
	}

	// Act
	s.MarkAllRead()
	if got := s.UnreadCount(); got != 0 {
		t.Fatalf("expected unread count 0, got %d", got)
	}
	s.Delete(last.ID)

	// Assert
	if got := s.UnreadCount(); got != 0 {
		t.Fatalf("expected unread count to stay 0, got %d", got)
	}
	if got := s.Len(); got != 2 {
		t.Fatalf("expected 2 notifications left, got %d", got)
	}
}

func TestStoreHydrate(t *testing.T) {

	// Arrange
	s := newTestStore()
	persisted := []entity.Notification{
		{ID: 3, Title: "newest", IsRead: false},
		{ID: 2, Title: "middle", IsRead: true},
		{ID: 1, Title: "oldest", IsRead: false},
	}
	if s.Hydrated() {
		t.Fatal("expected a fresh store to be unhydrated")
	}

	// Act
	s.Hydrate(persisted)

	// Assert
	if !s.Hydrated() {
		t.Fatal("expected store to report hydrated")
	}
	if got := s.UnreadCount(); got != 2 {
		t.Fatalf("expected unread count 2, got %d", got)
	}
	if list := s.List(); list[0].Title != "newest" {
		t.Fatalf("expected hydrated ordering preserved, got %q first", list[0].Title)
	}
}
