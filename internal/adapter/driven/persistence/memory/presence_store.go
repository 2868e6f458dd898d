package memory

import (
	"context"
	"sync"
	"time"

	"github.com/uzih05/DOMO/internal/core/domain"
)

// PresenceStore keeps workspace liveness in memory; entries lapse once they
// have not been touched within the TTL.
type PresenceStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	seen map[domain.WorkspaceID]map[domain.UserID]time.Time
	now  func() time.Time
}

func NewPresenceStore(ttl time.Duration) *PresenceStore {
	return &PresenceStore{
		ttl:  ttl,
		seen: make(map[domain.WorkspaceID]map[domain.UserID]time.Time),
		now:  time.Now,
	}
}

func (s *PresenceStore) Touch(ctx context.Context, workspace domain.WorkspaceID, user domain.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	members, ok := s.seen[workspace]
	if !ok {
		members = make(map[domain.UserID]time.Time)
		s.seen[workspace] = members
	}
	members[user] = s.now()
	return nil
}

func (s *PresenceStore) Online(ctx context.Context, workspace domain.WorkspaceID) ([]domain.UserID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	online := make([]domain.UserID, 0)
	for user, at := range s.seen[workspace] {
		if at.Before(cutoff) {
			delete(s.seen[workspace], user)
			continue
		}
		online = append(online, user)
	}
	return online, nil
}
