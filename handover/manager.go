package handover

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("handover: session not found")

// Manager owns the live verification sessions, keyed by opaque id.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	opts     []SessionOption
}

// NewManager creates an empty session manager. opts are applied to every
// session it starts.
func NewManager(opts ...SessionOption) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		opts:     opts,
	}
}

// Start opens a new session for a donation.
func (m *Manager) Start(donationID string, onComplete func()) *Session {
	s := NewSession(uuid.NewString(), donationID, onComplete, m.opts...)

	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()

	return s
}

// Get looks up a live session.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Remove closes and forgets a session. Removing an unknown id is a no-op.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.Close()
	}
}
