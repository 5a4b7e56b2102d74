package session

import (
	"maps"
	"slices"
	"sync"
	"time"
)

// Session is a snapshot of one conversation thread's bookkeeping.
type Session struct {
	ID           string
	MessageCount int
	CreatedAt    time.Time
}

// Registry maps session ids to their bookkeeping.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session, 4),
		now:      time.Now,
	}
}

// Ensure creates the session with a zero count if it does not exist yet.
// It reports whether the session was created.
func (r *Registry) Ensure(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, created := r.ensureLocked(id)

	return created
}

// Increment bumps the message count of a session, creating it if needed,
// and returns the new count.
func (r *Registry) Increment(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, _ := r.ensureLocked(id)
	s.MessageCount++

	return s.MessageCount
}

// ensureLocked returns the session for id, creating it if absent.
// Caller must hold r.mu for writing.
func (r *Registry) ensureLocked(id string) (*Session, bool) {
	if s, ok := r.sessions[id]; ok {
		return s, false
	}

	s := &Session{ID: id, CreatedAt: r.now()}
	r.sessions[id] = s

	return s, true
}

// Get returns a copy of the session's bookkeeping.
func (r *Registry) Get(id string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return Session{}, false
	}

	return *s, true
}

// ListIDs returns the ids of all known sessions in sorted order.
func (r *Registry) ListIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.sessions))
}

// Len returns the number of known sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}

// Clear forgets every session.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.sessions)
}
