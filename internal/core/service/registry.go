package service

import (
	"sync"

	"github.com/uzih05/DOMO/internal/core/domain"
	"github.com/uzih05/DOMO/internal/core/port"
)

// Registry maps rooms (project ids) to their live connection sets. Rooms
// are created on first Add and dropped when their set empties, so an idle
// process holds no per-project state.
//
// Mutations only ever touch the maps under the lock; delivery happens
// outside it, against a Snapshot. Channels that must not contend with each
// other (voice vs board) get separate Registry instances.
type Registry struct {
	mu    sync.RWMutex
	rooms map[domain.ProjectID]map[port.Conn]bool
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[domain.ProjectID]map[port.Conn]bool),
	}
}

// Add registers conn into the room, creating the room if needed.
func (r *Registry) Add(project domain.ProjectID, conn port.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[project]
	if !ok {
		room = make(map[port.Conn]bool)
		r.rooms[project] = room
	}
	room[conn] = true
}

// Remove unregisters conn from the room and reports whether it was present.
// Removing an absent conn is a no-op: cleanup paths may run twice. An
// emptied room is deleted outright.
func (r *Registry) Remove(project domain.ProjectID, conn port.Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[project]
	if !ok || !room[conn] {
		return false
	}
	delete(room, conn)
	if len(room) == 0 {
		delete(r.rooms, project)
	}
	return true
}

// Snapshot returns the room's current membership as a fresh slice, so a
// caller can iterate and evict without corrupting the live set.
func (r *Registry) Snapshot(project domain.ProjectID) []port.Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room := r.rooms[project]
	conns := make([]port.Conn, 0, len(room))
	for conn := range room {
		conns = append(conns, conn)
	}
	return conns
}

// Count returns the room's current connection count.
func (r *Registry) Count(project domain.ProjectID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[project])
}

// Rooms returns how many rooms currently hold at least one connection.
func (r *Registry) Rooms() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// Drain empties every room and returns all connections that were tracked.
// Used on shutdown so the caller can close them.
func (r *Registry) Drain() []port.Conn {
	r.mu.Lock()
	defer r.mu.Unlock()

	var conns []port.Conn
	for project, room := range r.rooms {
		for conn := range room {
			conns = append(conns, conn)
		}
		delete(r.rooms, project)
	}
	return conns
}
