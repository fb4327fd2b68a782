package chat

import (
	"sync"

	"github.com/Univearth/ai-hackathon/domain"
)

type (
	// SessionStore holds the per-user product lists accumulated through
	// the chat bot. The store only covers liveness inside one process;
	// durability comes from the document persisted after every append.
	SessionStore interface {
		Load(userID string) (*domain.Session, bool)
		Save(userID string, session *domain.Session)
		Reset(userID string) *domain.Session
	}

	memorySessionStore struct {
		mu       sync.RWMutex
		sessions map[string]*domain.Session
	}
)

func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{
		sessions: make(map[string]*domain.Session),
	}
}

func (s *memorySessionStore) Load(userID string) (*domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[userID]
	return session, ok
}

func (s *memorySessionStore) Save(userID string, session *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[userID] = session
}

func (s *memorySessionStore) Reset(userID string) *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := &domain.Session{Products: []domain.ProductRecord{}}
	s.sessions[userID] = session
	return session
}
