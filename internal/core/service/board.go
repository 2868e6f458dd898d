package service

import (
	"github.com/rs/zerolog"

	"github.com/uzih05/DOMO/internal/core/domain"
	"github.com/uzih05/DOMO/internal/core/port"
)

// Board fans project board events out to every live subscriber of the
// project, WebSocket and SSE alike. Events originate from REST handlers as
// a side effect of unrelated writes; the payload is opaque here and the
// stream is best effort. The persisted entity stays the source of truth.
type Board struct {
	registry *Registry
	dispatch *Dispatcher
	log      zerolog.Logger
}

func NewBoard(registry *Registry, dispatch *Dispatcher, log zerolog.Logger) *Board {
	return &Board{
		registry: registry,
		dispatch: dispatch,
		log:      log,
	}
}

// Subscribe registers conn for the project's board events.
func (b *Board) Subscribe(project domain.ProjectID, conn port.Conn) {
	b.registry.Add(project, conn)
	b.log.Debug().
		Str("conn_id", conn.ID()).
		Str("project_id", project.String()).
		Int("subscribers", b.registry.Count(project)).
		Msg("Board subscriber added")
}

// Unsubscribe removes conn and closes it. Safe to call after an eviction
// already removed it.
func (b *Board) Unsubscribe(project domain.ProjectID, conn port.Conn) {
	b.registry.Remove(project, conn)
	_ = conn.Close()
	b.log.Debug().
		Str("conn_id", conn.ID()).
		Str("project_id", project.String()).
		Msg("Board subscriber removed")
}

// Publish delivers the event to all current subscribers of the project,
// sender included; board events carry no exclusion.
func (b *Board) Publish(project domain.ProjectID, event domain.Event) {
	b.dispatch.BroadcastAll(project, event.Encode())
}

// Subscribers returns the project's current subscriber count.
func (b *Board) Subscribers(project domain.ProjectID) int {
	return b.registry.Count(project)
}

// Shutdown closes and forgets every subscriber.
func (b *Board) Shutdown() {
	for _, conn := range b.registry.Drain() {
		_ = conn.Close()
	}
}
