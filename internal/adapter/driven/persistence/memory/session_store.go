package memory

import (
	"context"
	"sync"

	"github.com/uzih05/DOMO/internal/core/domain"
	"github.com/uzih05/DOMO/internal/core/port"
)

// SessionStore maps session tokens to users in memory.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.UserID
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domain.UserID)}
}

// Put registers a session token for user.
func (s *SessionStore) Put(token string, user domain.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = user
}

// Delete revokes a session token.
func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

func (s *SessionStore) Resolve(ctx context.Context, token string) (domain.UserID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.sessions[token]
	if !ok {
		return 0, port.ErrNoSession
	}
	return user, nil
}
