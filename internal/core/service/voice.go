package service

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/uzih05/DOMO/internal/core/domain"
	"github.com/uzih05/DOMO/internal/core/port"
)

// VoiceState is the lifecycle of one voice connection.
//
//	Connected --join--> Joined --close--> Closed
//	    \---------------close-----------/
//
// Closed is terminal. Only the transition out of Joined announces a leave.
type VoiceState int

const (
	StateConnected VoiceState = iota // transport open, no identity yet
	StateJoined                      // identity bound
	StateClosed                      // torn down
)

// VoiceSession is the per-connection protocol state. One session belongs to
// exactly one transport read loop, but Close can race a dispatcher eviction,
// so the state is guarded.
type VoiceSession struct {
	project domain.ProjectID
	conn    port.Conn

	mu    sync.Mutex
	state VoiceState
	user  domain.UserID
}

// State returns the session's current lifecycle state.
func (s *VoiceSession) State() VoiceState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns the bound identity, if the session ever joined.
func (s *VoiceSession) User() (domain.UserID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, s.state == StateJoined
}

// Voice runs the signaling protocol for the voice channel: peer discovery
// on join, targeted offer/answer/ICE relay, and leave notification. The
// server only carries signaling; media flows peer to peer.
type Voice struct {
	registry *Registry
	index    *ParticipantIndex
	dispatch *Dispatcher
	log      zerolog.Logger
}

func NewVoice(registry *Registry, index *ParticipantIndex, dispatch *Dispatcher, log zerolog.Logger) *Voice {
	return &Voice{
		registry: registry,
		index:    index,
		dispatch: dispatch,
		log:      log,
	}
}

// Connect registers a freshly accepted transport into the room and returns
// its session in the Connected state. The transport handshake must already
// have succeeded: a rejected handshake never reaches the registry.
func (v *Voice) Connect(project domain.ProjectID, conn port.Conn) *VoiceSession {
	v.registry.Add(project, conn)
	return &VoiceSession{
		project: project,
		conn:    conn,
		state:   StateConnected,
	}
}

// HandleFrame interprets one inbound frame. Malformed frames and joins
// without a sender id are dropped; the connection and its loop stay alive.
func (v *Voice) HandleFrame(sess *VoiceSession, raw []byte) {
	sig, err := domain.DecodeSignal(raw)
	if err != nil {
		if errors.Is(err, domain.ErrNoSender) {
			v.log.Debug().
				Str("conn_id", sess.conn.ID()).
				Msg("Ignoring join without sender id")
		} else {
			v.log.Debug().Err(err).
				Str("conn_id", sess.conn.ID()).
				Msg("Ignoring unparseable frame")
		}
		return
	}

	switch sig := sig.(type) {
	case domain.Join:
		v.handleJoin(sess, sig.Sender)

	case domain.Relay:
		if sig.Target != nil {
			if !v.dispatch.SendToUser(sess.project, *sig.Target, sig.Raw) {
				v.log.Debug().
					Str("type", sig.Type).
					Str("to", sig.Target.String()).
					Str("project_id", sess.project.String()).
					Msg("Relay target not reachable")
			}
			return
		}
		// No target: older clients expect room broadcast here.
		v.dispatch.Broadcast(sess.project, sig.Raw, sess.conn)

	case domain.Opaque:
		v.dispatch.Broadcast(sess.project, sig.Raw, sess.conn)
	}
}

func (v *Voice) handleJoin(sess *VoiceSession, user domain.UserID) {
	sess.mu.Lock()
	if sess.state == StateClosed {
		sess.mu.Unlock()
		return
	}
	sess.state = StateJoined
	sess.user = user
	sess.mu.Unlock()

	if evicted := v.index.Bind(sess.project, sess.conn, user); evicted != nil {
		// Same identity announced from a second connection: the previous
		// one is dead to us, the newest is authoritative.
		v.log.Info().
			Str("user_id", user.String()).
			Str("project_id", sess.project.String()).
			Msg("Replacing earlier connection for identity")
		v.registry.Remove(sess.project, evicted)
		_ = evicted.Close()
	}

	v.log.Info().
		Str("conn_id", sess.conn.ID()).
		Str("user_id", user.String()).
		Str("project_id", sess.project.String()).
		Msg("Peer joined voice room")

	v.dispatch.Broadcast(sess.project, domain.UserJoined(user), sess.conn)

	others := v.index.Others(sess.project, user)
	if err := sess.conn.Send(domain.ExistingUsers(others)); err != nil {
		v.log.Warn().Err(err).
			Str("conn_id", sess.conn.ID()).
			Msg("Send failed, evicting connection")
		v.dispatch.Evict(sess.project, sess.conn)
	}
}

// Close tears the session down: unregister, unbind, and, if the session had
// joined and still owned its binding, notify the whole room. Calling Close
// twice is harmless and never announces a second leave.
func (v *Voice) Close(sess *VoiceSession) {
	sess.mu.Lock()
	prev := sess.state
	user := sess.user
	sess.state = StateClosed
	sess.mu.Unlock()

	if prev == StateClosed {
		return
	}

	owned := false
	if prev == StateJoined {
		// A session whose binding was taken over by a newer connection no
		// longer owns its identity and must leave silently.
		if got, ok := v.index.Unbind(sess.project, sess.conn); ok && got == user {
			owned = true
		}
	}

	v.registry.Remove(sess.project, sess.conn)
	_ = sess.conn.Close()

	if owned {
		v.log.Info().
			Str("conn_id", sess.conn.ID()).
			Str("user_id", user.String()).
			Str("project_id", sess.project.String()).
			Msg("Peer left voice room")
		v.dispatch.BroadcastAll(sess.project, domain.UserLeft(user))
	}
}

// Shutdown drops every tracked connection. Sessions are not individually
// closed here; transports observing the close run their own teardown.
func (v *Voice) Shutdown() {
	for _, conn := range v.registry.Drain() {
		_ = conn.Close()
	}
}
