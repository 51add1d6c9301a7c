package interview

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

// Store holds live sessions in memory. The map lock only guards lookups; each
// session carries its own lock for mutations.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*entities.InterviewSession
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{sessions: make(map[uuid.UUID]*entities.InterviewSession)}
}

// Put adds a session
func (s *Store) Put(session *entities.InterviewSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
}

// Get retrieves a session by id
func (s *Store) Get(id uuid.UUID) (*entities.InterviewSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// Delete removes a session
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Count returns the number of sessions held
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// All returns the sessions held at call time
func (s *Store) All() []*entities.InterviewSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entities.InterviewSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, session)
	}
	return out
}

// EvictCompleted drops sessions that completed before the cutoff. Sessions
// locked by a request are skipped and picked up on a later pass.
func (s *Store) EvictCompleted(before time.Time) int {
	evicted := 0
	for _, session := range s.All() {
		if !session.TryLock() {
			continue
		}
		expired := session.State == entities.SessionStateComplete &&
			session.CompletedAt != nil && session.CompletedAt.Before(before)
		session.Unlock()

		if expired {
			s.Delete(session.ID)
			evicted++
		}
	}
	return evicted
}
