package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/uzih05/DOMO/internal/core/domain"
)

// keepAliveInterval bounds the silence on an SSE stream: a comment frame
// goes out when no event arrived in time, so half-open connections surface
// and proxies have a reason to flush.
const keepAliveInterval = 15 * time.Second

var (
	errStreamClosed = errors.New("sse stream closed")
	errSlowConsumer = errors.New("sse buffer full")
)

// sseConn adapts an SSE subscriber to port.Conn. Send only enqueues; the
// handler goroutine owns the ResponseWriter. A full buffer means the
// consumer stopped draining and counts as a dead connection.
type sseConn struct {
	id     string
	ch     chan []byte
	closed chan struct{}
	once   sync.Once
}

func newSSEConn() *sseConn {
	return &sseConn{
		id:     uuid.New().String(),
		ch:     make(chan []byte, 256),
		closed: make(chan struct{}),
	}
}

func (c *sseConn) ID() string {
	return c.id
}

func (c *sseConn) Send(payload []byte) error {
	select {
	case <-c.closed:
		return errStreamClosed
	default:
	}
	select {
	case c.ch <- payload:
		return nil
	default:
		return errSlowConsumer
	}
}

func (c *sseConn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

func sseHeaders(w http.ResponseWriter) (http.Flusher, bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return nil, false
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	return flusher, true
}

func writeSSE(w http.ResponseWriter, flusher http.Flusher, payload []byte) {
	fmt.Fprintf(w, "data: %s\n\n", payload)
	flusher.Flush()
}

func writeKeepAlive(w http.ResponseWriter, flusher http.Flusher) {
	fmt.Fprint(w, ": keep-alive\n\n")
	flusher.Flush()
}

// StreamBoardEvents is the SSE flavor of the board channel. It shares the
// board room with the WebSocket subscribers.
func (h *Handler) StreamBoardEvents(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireSession(w, r); !ok {
		return
	}
	project, ok := h.checkProject(w, r)
	if !ok {
		return
	}
	flusher, ok := sseHeaders(w)
	if !ok {
		return
	}

	conn := newSSEConn()
	l := h.log.With().
		Str("conn_id", conn.id).
		Str("project_id", project.String()).
		Logger()
	l.Info().Msg("Board stream connected")

	h.Board.Subscribe(project, conn)
	defer func() {
		l.Info().Msg("Board stream disconnected")
		h.Board.Unsubscribe(project, conn)
	}()

	flusher.Flush()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-conn.closed:
			return
		case payload := <-conn.ch:
			writeSSE(w, flusher, payload)
			ticker.Reset(keepAliveInterval)
		case <-ticker.C:
			writeKeepAlive(w, flusher)
		}
	}
}

// StreamChat pushes chat messages appended after connect time.
func (h *Handler) StreamChat(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireSession(w, r); !ok {
		return
	}
	project, ok := h.checkProject(w, r)
	if !ok {
		return
	}
	flusher, ok := sseHeaders(w)
	if !ok {
		return
	}

	l := h.log.With().Str("project_id", project.String()).Logger()
	l.Info().Msg("Chat stream connected")
	defer l.Info().Msg("Chat stream disconnected")

	flusher.Flush()

	err := h.Chat.Stream(r.Context(), project, func(msg domain.ChatMessage) error {
		payload, err := json.Marshal(msg)
		if err != nil {
			return err
		}
		writeSSE(w, flusher, payload)
		return nil
	})
	if err != nil {
		l.Error().Err(err).Msg("Chat stream failed")
	}
}

// StreamOnlineMembers pushes the workspace's online-member snapshot on
// connect and whenever it changes.
func (h *Handler) StreamOnlineMembers(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	workspace, err := domain.ParseWorkspaceID(chi.URLParam(r, "workspaceID"))
	if err != nil {
		http.Error(w, "invalid workspace id", http.StatusBadRequest)
		return
	}
	flusher, ok := sseHeaders(w)
	if !ok {
		return
	}

	l := h.log.With().
		Str("workspace_id", workspace.String()).
		Str("user_id", user.String()).
		Logger()
	l.Info().Msg("Online members stream connected")
	defer l.Info().Msg("Online members stream disconnected")

	flusher.Flush()

	err = h.Presence.StreamOnline(r.Context(), workspace, user, func(online []domain.UserID) error {
		payload, err := json.Marshal(struct {
			OnlineMembers []domain.UserID `json:"online_members"`
		}{online})
		if err != nil {
			return err
		}
		writeSSE(w, flusher, payload)
		return nil
	})
	if err != nil {
		l.Error().Err(err).Msg("Online members stream failed")
	}
}
