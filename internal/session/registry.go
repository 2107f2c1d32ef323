package session

import (
	"fmt"
	"sync"
	"time"
)

// Registry holds in-flight sessions. Implementations must support
// concurrent insert and lookup for different session ids; per-session
// call ordering is the caller's responsibility.
type Registry interface {
	Put(s *Session) error
	Get(id string) (*Session, error)
	Delete(id string)
	// PurgeOlderThan drops sessions started before the cutoff and
	// returns how many were removed. Hosts run this periodically to
	// evict abandoned sessions.
	PurgeOlderThan(cutoff time.Time) int
}

type memoryRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryRegistry returns the default in-process registry. Sessions
// are lost on restart; durable results are the archiver's concern.
func NewMemoryRegistry() Registry {
	return &memoryRegistry{sessions: map[string]*Session{}}
}

func (m *memoryRegistry) Put(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[s.ID]; exists {
		// Ids carry a timestamp plus random suffix; a collision means
		// the generator is broken, not a retryable condition.
		return fmt.Errorf("session id collision: %s", s.ID)
	}
	m.sessions[s.ID] = s
	return nil
}

func (m *memoryRegistry) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *memoryRegistry) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *memoryRegistry) PurgeOlderThan(cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.StartTime.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}
