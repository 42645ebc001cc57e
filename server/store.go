package server

import (
	"sync"

	"github.com/google/uuid"

	"eduforge/studio"
)

// sessionStore keeps one isolated studio.Session per browser session.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*studio.Session
}

func newStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*studio.Session)}
}

func (s *sessionStore) create() *studio.Session {
	sess := studio.NewSession(uuid.NewString())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return sess
}

func (s *sessionStore) get(id string) (*studio.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *sessionStore) delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
