package service

import (
	"github.com/rs/zerolog"

	"github.com/uzih05/DOMO/internal/core/domain"
	"github.com/uzih05/DOMO/internal/core/port"
)

// Dispatcher delivers payloads to room members. A failed send is treated as
// a dead connection: the handle is evicted and closed, and delivery to the
// rest of the room continues. Broadcast never fails as a whole.
//
// index may be nil for channels that carry no identity bindings (board
// events).
type Dispatcher struct {
	registry *Registry
	index    *ParticipantIndex
	log      zerolog.Logger
}

func NewDispatcher(registry *Registry, index *ParticipantIndex, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		index:    index,
		log:      log,
	}
}

// Broadcast delivers payload to every connection in the room except
// exclude. Iteration runs over a membership snapshot taken at call time, so
// evictions mid-delivery cannot skip or duplicate a neighbor.
func (d *Dispatcher) Broadcast(project domain.ProjectID, payload []byte, exclude port.Conn) {
	for _, conn := range d.registry.Snapshot(project) {
		if conn == exclude {
			continue
		}
		if err := conn.Send(payload); err != nil {
			d.log.Warn().Err(err).
				Str("conn_id", conn.ID()).
				Str("project_id", project.String()).
				Msg("Send failed, evicting connection")
			d.Evict(project, conn)
		}
	}
}

// BroadcastAll delivers payload to every connection in the room, sender
// included. Used for user_left, where the whole room is notified.
func (d *Dispatcher) BroadcastAll(project domain.ProjectID, payload []byte) {
	d.Broadcast(project, payload, nil)
}

// SendToUser resolves user to its connection in the room and delivers
// payload to it alone. It reports false when the identity is unknown (no
// side effects) or when delivery failed (the connection is evicted). The
// caller does not retry either way; a stalled negotiation is the client's
// timeout to handle.
func (d *Dispatcher) SendToUser(project domain.ProjectID, user domain.UserID, payload []byte) bool {
	if d.index == nil {
		return false
	}
	conn, ok := d.index.Lookup(project, user)
	if !ok {
		return false
	}
	if err := conn.Send(payload); err != nil {
		d.log.Warn().Err(err).
			Str("conn_id", conn.ID()).
			Str("user_id", user.String()).
			Str("project_id", project.String()).
			Msg("Unicast failed, evicting connection")
		d.Evict(project, conn)
		return false
	}
	return true
}

// Evict removes conn from the room and its identity binding, then closes
// the transport. Safe to call twice for the same connection.
func (d *Dispatcher) Evict(project domain.ProjectID, conn port.Conn) {
	d.registry.Remove(project, conn)
	if d.index != nil {
		d.index.Unbind(project, conn)
	}
	_ = conn.Close()
}
