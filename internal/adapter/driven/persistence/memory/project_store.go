package memory

import (
	"context"
	"sync"

	"github.com/uzih05/DOMO/internal/core/domain"
)

// ProjectStore is the in-memory project existence check.
type ProjectStore struct {
	mu   sync.RWMutex
	ids  map[domain.ProjectID]bool
	open bool
}

// NewProjectStore knows only the given project ids.
func NewProjectStore(ids ...domain.ProjectID) *ProjectStore {
	s := &ProjectStore{ids: make(map[domain.ProjectID]bool)}
	for _, id := range ids {
		s.ids[id] = true
	}
	return s
}

// NewOpenProjectStore accepts every project id. Dev-mode only.
func NewOpenProjectStore() *ProjectStore {
	return &ProjectStore{ids: make(map[domain.ProjectID]bool), open: true}
}

// Add registers another known project.
func (s *ProjectStore) Add(id domain.ProjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = true
}

func (s *ProjectStore) Exists(ctx context.Context, id domain.ProjectID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.open || s.ids[id], nil
}
