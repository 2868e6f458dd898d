package domain

import (
	"errors"
	"strings"
	"time"
)

// ChatMessage is one persisted project chat message. The JSON shape matches
// what the chat stream pushes to clients.
type ChatMessage struct {
	ID        int64     `json:"id"`
	ProjectID ProjectID `json:"-"`
	UserID    UserID    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

var ErrEmptyMessage = errors.New("message content cannot be empty")

// NewChatMessage validates and builds an unsaved chat message. The id is
// assigned by the repository on append.
func NewChatMessage(project ProjectID, sender UserID, content string) (ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return ChatMessage{}, ErrEmptyMessage
	}
	return ChatMessage{
		ProjectID: project,
		UserID:    sender,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}, nil
}
