package service

import (
	"sync"

	"github.com/uzih05/DOMO/internal/core/domain"
	"github.com/uzih05/DOMO/internal/core/port"
)

// ParticipantIndex tracks which identity each voice connection has bound,
// per room. A connection enters a room unbound (it has not sent join yet)
// and binds later; at most one connection per identity per room.
type ParticipantIndex struct {
	mu     sync.RWMutex
	users  map[domain.ProjectID]map[domain.UserID]port.Conn
	owners map[domain.ProjectID]map[port.Conn]domain.UserID
}

func NewParticipantIndex() *ParticipantIndex {
	return &ParticipantIndex{
		users:  make(map[domain.ProjectID]map[domain.UserID]port.Conn),
		owners: make(map[domain.ProjectID]map[port.Conn]domain.UserID),
	}
}

// Bind records conn as the connection for user in the room. If another
// connection already holds that identity it is unbound here and returned so
// the caller can close and unregister it: the newest connection wins,
// which is what makes tab refreshes not leave zombie entries behind.
func (ix *ParticipantIndex) Bind(project domain.ProjectID, conn port.Conn, user domain.UserID) (evicted port.Conn) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	users, ok := ix.users[project]
	if !ok {
		users = make(map[domain.UserID]port.Conn)
		ix.users[project] = users
		ix.owners[project] = make(map[port.Conn]domain.UserID)
	}
	owners := ix.owners[project]

	if prev, ok := users[user]; ok && prev != conn {
		delete(owners, prev)
		evicted = prev
	}
	// A rebind under a new identity drops the old one first.
	if old, ok := owners[conn]; ok && old != user {
		delete(users, old)
	}

	users[user] = conn
	owners[conn] = user
	return evicted
}

// Lookup resolves an identity to its live connection in the room.
func (ix *ParticipantIndex) Lookup(project domain.ProjectID, user domain.UserID) (port.Conn, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	conn, ok := ix.users[project][user]
	return conn, ok
}

// Unbind removes whatever identity conn currently holds in the room and
// returns it. It reports false when conn holds nothing, which is how a
// replaced connection's teardown learns it must not announce a leave.
func (ix *ParticipantIndex) Unbind(project domain.ProjectID, conn port.Conn) (domain.UserID, bool) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	owners, ok := ix.owners[project]
	if !ok {
		return 0, false
	}
	user, ok := owners[conn]
	if !ok {
		return 0, false
	}

	delete(owners, conn)
	delete(ix.users[project], user)
	if len(owners) == 0 {
		delete(ix.owners, project)
		delete(ix.users, project)
	}
	return user, true
}

// Others returns every bound identity in the room except exclude. The
// result is never nil: a joiner with no peers gets an empty list.
func (ix *ParticipantIndex) Others(project domain.ProjectID, exclude domain.UserID) []domain.UserID {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	ids := make([]domain.UserID, 0, len(ix.users[project]))
	for user := range ix.users[project] {
		if user != exclude {
			ids = append(ids, user)
		}
	}
	return ids
}
