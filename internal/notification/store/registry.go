package store

import (
	"sync"

	"github.com/wicaksonoadi/edubell/internal/pkg/clock"
	"github.com/wicaksonoadi/edubell/internal/pkg/uid"
)

// Registry owns one Store per user.
type Registry struct {
	mu     sync.RWMutex
	stores map[int64]*Store

	number uid.NumberID
	clock  clock.Clocker
}

// NewRegistry creates an empty Registry.
func NewRegistry(number uid.NumberID, clk clock.Clocker) *Registry {
	return &Registry{
		stores: make(map[int64]*Store),
		number: number,
		clock:  clk,
	}
}

// Get returns the user's Store if one exists.
func (r *Registry) Get(userID int64) (*Store, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.stores[userID]
	return s, ok
}

// GetOrCreate returns the user's Store, creating an empty one when the
// user is seen for the first time. The second result reports whether the
// Store was just created. Callers decide on hydration via Hydrated, not
// this flag, so a failed load can be retried.
func (r *Registry) GetOrCreate(userID int64) (*Store, bool) {
	r.mu.RLock()
	if s, ok := r.stores[userID]; ok {
		r.mu.RUnlock()
		return s, false
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores[userID]; ok {
		return s, false
	}

	s := New(r.number, r.clock)
	r.stores[userID] = s
	return s, true
}
