package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/edusmart/backend/internal/models"
	"github.com/google/uuid"
)

// Manager owns all in-flight sessions, keyed by ID. Sessions live in
// memory only; a completed session's summary is the durable artifact.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	idleTTL  time.Duration
	interval time.Duration
}

func NewManager(idleTTL, sweepInterval time.Duration) *Manager {
	if idleTTL <= 0 {
		idleTTL = 30 * time.Minute
	}
	if sweepInterval <= 0 {
		sweepInterval = 5 * time.Minute
	}
	return &Manager{
		sessions: make(map[string]*Session),
		idleTTL:  idleTTL,
		interval: sweepInterval,
	}
}

// Create registers a new session for the user and returns it.
func (m *Manager) Create(userID int64, subject string) *Session {
	s := newSession(uuid.NewString(), userID, subject)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns the session only if it belongs to the user. Another user's
// session ID looks identical to a missing one.
func (m *Manager) Get(id string, userID int64) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok || s.UserID != userID {
		return nil, ErrNotFound
	}
	return s, nil
}

// Remove drops the session from the registry.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Start begins the idle-session sweeper in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	go m.run(ctx)
}

func (m *Manager) run(ctx context.Context) {
	log.Printf("Session sweeper started (ttl=%v, interval=%v)", m.idleTTL, m.interval)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Session sweeper stopped")
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

// sweep abandons and removes sessions idle past the TTL. An expired
// session never submits a summary, same as an explicit abandon.
func (m *Manager) sweep() {
	cutoff := time.Now().Add(-m.idleTTL)

	m.mu.Lock()
	var expired []*Session
	for _, s := range m.sessions {
		s.mu.Lock()
		idle := !s.inflight && s.lastActive.Before(cutoff)
		s.mu.Unlock()
		if idle {
			expired = append(expired, s)
		}
	}
	for _, s := range expired {
		delete(m.sessions, s.ID)
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.mu.Lock()
		if s.state != models.StateComplete {
			s.state = models.StateAbandoned
		}
		s.mu.Unlock()
		log.Printf("Removed idle session %s (user %d)", s.ID, s.UserID)
	}
}
