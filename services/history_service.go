package services

import (
	"sync"

	"fraudguard/models"
)

// MaxHistory is the number of turns kept per session.
const MaxHistory = 10

// HistoryStore keeps the most recent turns of every session in memory.
// It is safe for concurrent use.
type HistoryStore struct {
	limit int

	mu       sync.RWMutex
	sessions map[string][]models.Message
}

// NewHistoryStore creates a store that keeps at most limit turns per
// session. A non-positive limit falls back to MaxHistory.
func NewHistoryStore(limit int) *HistoryStore {
	if limit <= 0 {
		limit = MaxHistory
	}
	return &HistoryStore{
		limit:    limit,
		sessions: make(map[string][]models.Message),
	}
}

// Append adds msg to its session and drops the oldest turns once the
// session holds more than the limit.
func (s *HistoryStore) Append(msg models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.sessions[msg.SessionID]
	start := 0
	if n := len(cur) + 1; n > s.limit {
		start = n - s.limit
	}

	// The session slice is replaced, never grown in place.
	next := make([]models.Message, 0, len(cur)+1-start)
	if start < len(cur) {
		next = append(next, cur[start:]...)
	}
	next = append(next, msg)
	s.sessions[msg.SessionID] = next
}

// Get returns the turns of a session, oldest first. Unknown sessions yield
// an empty slice.
func (s *HistoryStore) Get(sessionID string) []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cur := s.sessions[sessionID]
	out := make([]models.Message, len(cur))
	copy(out, cur)
	return out
}

// Clear forgets a session. Clearing an unknown session is a no-op.
func (s *HistoryStore) Clear(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// Sessions reports how many sessions currently have history.
func (s *HistoryStore) Sessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
