package usecase

import (
	"context"
	"time"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
)

// StreamEvent is one notification update pushed over SSE.
type StreamEvent struct {
	ID        int64     `json:"id,string"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Priority  string    `json:"priority"`
	ActionURL string    `json:"action_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type subscriber struct {
	ch chan StreamEvent
}

// StreamNotifications registers a stream for the authenticated user and
// closes it when ctx is done. Subscriber presence drives the store's
// connected flag so other components can tell a live client is attached.
func (s *Usecase) StreamNotifications(ctx context.Context) (<-chan StreamEvent, error) {
	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	st, err := s.userStore(ctx, clm.UserID)
	if err != nil {
		return nil, err
	}

	sub := &subscriber{ch: make(chan StreamEvent, 10)}

	s.streamMu.Lock()
	if s.streams[clm.UserID] == nil {
		s.streams[clm.UserID] = make(map[*subscriber]struct{})
	}
	s.streams[clm.UserID][sub] = struct{}{}
	s.streamMu.Unlock()
	st.SetConnected(true)

	go func() {
		<-ctx.Done()
		s.streamMu.Lock()
		if subs := s.streams[clm.UserID]; subs != nil {
			delete(subs, sub)
			if len(subs) == 0 {
				delete(s.streams, clm.UserID)
				st.SetConnected(false)
			}
		}
		// Closed under the write lock; publishers send under the read
		// lock, so they can never hit a closed channel.
		close(sub.ch)
		s.streamMu.Unlock()
	}()

	return sub.ch, nil
}

func (s *Usecase) publishNotification(n entity.Notification) {
	evt := StreamEvent{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type.String(),
		Priority:  n.Priority.String(),
		ActionURL: n.ActionURL,
		CreatedAt: n.CreatedAt,
	}

	// Sends never block (buffered channel, default branch), so holding
	// the read lock for the whole fan-out is safe.
	s.streamMu.RLock()
	defer s.streamMu.RUnlock()

	for sub := range s.streams[n.UserID] {
		select {
		case sub.ch <- evt:
		default:
		}
	}
}
