package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict to the frontend origin once it is fixed
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsConn adapts one gorilla connection to port.Conn. Broadcasts arrive from
// many goroutines while gorilla allows a single writer, so writes are
// serialized here.
type wsConn struct {
	id   string
	mu   sync.Mutex
	conn *websocket.Conn
}

func newWSConn(conn *websocket.Conn) *wsConn {
	return &wsConn{
		id:   uuid.New().String(),
		conn: conn,
	}
}

func (c *wsConn) ID() string {
	return c.id
}

func (c *wsConn) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}

// ServeVoiceWS accepts a voice signaling socket. The session gates
// admission; the signaling identity still comes from the join frame.
func (h *Handler) ServeVoiceWS(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	project, ok := h.checkProject(w, r)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("Error while upgrading ws")
		return
	}

	client := newWSConn(conn)
	l := h.log.With().
		Str("conn_id", client.id).
		Str("user_id", user.String()).
		Str("project_id", project.String()).
		Logger()
	l.Info().Msg("Voice client connected")

	sess := h.Voice.Connect(project, client)
	defer func() {
		l.Info().Msg("Voice client disconnected")
		h.Voice.Close(sess)
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				l.Error().Err(err).Msg("Unexpected close error")
			}
			break
		}
		h.Voice.HandleFrame(sess, raw)
	}
}

// ServeBoardWS subscribes the socket to the project's board events. The
// channel is push-only: inbound frames are read for liveness and dropped.
func (h *Handler) ServeBoardWS(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireSession(w, r); !ok {
		return
	}
	project, ok := h.checkProject(w, r)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("Error while upgrading ws")
		return
	}

	client := newWSConn(conn)
	l := h.log.With().
		Str("conn_id", client.id).
		Str("project_id", project.String()).
		Logger()
	l.Info().Msg("Board subscriber connected")

	h.Board.Subscribe(project, client)
	defer func() {
		l.Info().Msg("Board subscriber disconnected")
		h.Board.Unsubscribe(project, client)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				l.Error().Err(err).Msg("Unexpected close error")
			}
			break
		}
	}
}
