package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/uzih05/DOMO/internal/core/domain"
	"github.com/uzih05/DOMO/internal/core/port"
	"github.com/uzih05/DOMO/internal/core/service"
)

// Handler wires the real-time services to their HTTP/WS/SSE endpoints.
type Handler struct {
	Voice    *service.Voice
	Board    *service.Board
	Chat     *service.Chat
	Presence *service.Presence

	Sessions port.SessionStore
	Projects port.ProjectStore

	sessionCookie string
	log           zerolog.Logger
}

func NewHandler(
	voice *service.Voice,
	board *service.Board,
	chat *service.Chat,
	presence *service.Presence,
	sessions port.SessionStore,
	projects port.ProjectStore,
	sessionCookie string,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		Voice:         voice,
		Board:         board,
		Chat:          chat,
		Presence:      presence,
		Sessions:      sessions,
		Projects:      projects,
		sessionCookie: sessionCookie,
		log:           log,
	}
}

func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/ws/projects/{projectID}/voice", h.ServeVoiceWS)
	r.Get("/ws/projects/{projectID}/board", h.ServeBoardWS)

	r.Get("/projects/{projectID}/board/events", h.StreamBoardEvents)
	r.Post("/projects/{projectID}/board/events", h.PublishBoardEvent)

	r.Get("/projects/{projectID}/chat/stream", h.StreamChat)
	r.Post("/projects/{projectID}/chat/messages", h.PostChatMessage)

	r.Get("/workspaces/{workspaceID}/online-members/stream", h.StreamOnlineMembers)

	return r
}

// authenticate resolves the caller's session. The token comes from the
// session cookie, or from a token query parameter for WebSocket clients
// that cannot set cookies cross-origin.
func (h *Handler) authenticate(r *http.Request) (domain.UserID, error) {
	token := ""
	if c, err := r.Cookie(h.sessionCookie); err == nil {
		token = c.Value
	}
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	if token == "" {
		return 0, port.ErrNoSession
	}
	return h.Sessions.Resolve(r.Context(), token)
}

func (h *Handler) requireSession(w http.ResponseWriter, r *http.Request) (domain.UserID, bool) {
	user, err := h.authenticate(r)
	if err != nil {
		if !errors.Is(err, port.ErrNoSession) {
			h.log.Error().Err(err).Msg("Session lookup failed")
		}
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return 0, false
	}
	return user, true
}

// checkProject resolves and verifies the project from the URL. Every
// real-time channel goes through this before any registry registration.
func (h *Handler) checkProject(w http.ResponseWriter, r *http.Request) (domain.ProjectID, bool) {
	project, err := domain.ParseProjectID(chi.URLParam(r, "projectID"))
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return 0, false
	}
	exists, err := h.Projects.Exists(r.Context(), project)
	if err != nil {
		h.log.Error().Err(err).Str("project_id", project.String()).Msg("Project lookup failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return 0, false
	}
	if !exists {
		http.Error(w, "project not found", http.StatusNotFound)
		return 0, false
	}
	return project, true
}

// PublishBoardEvent is the hook REST handlers call after completing a
// write: the serialized entity is fanned out to all current subscribers of
// the project's board.
func (h *Handler) PublishBoardEvent(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireSession(w, r); !ok {
		return
	}
	project, ok := h.checkProject(w, r)
	if !ok {
		return
	}

	var event domain.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil || event.Type == "" {
		http.Error(w, "invalid event", http.StatusBadRequest)
		return
	}

	h.Board.Publish(project, event)
	w.WriteHeader(http.StatusAccepted)
}

// PostChatMessage persists a chat message; connected chat streams pick it
// up on their next poll.
func (h *Handler) PostChatMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	project, ok := h.checkProject(w, r)
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	msg, err := h.Chat.Post(r.Context(), project, user, req.Content)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyMessage) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.Error().Err(err).Str("project_id", project.String()).Msg("Storing chat message failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(msg)
}
