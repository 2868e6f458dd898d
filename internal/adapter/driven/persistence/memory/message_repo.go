package memory

import (
	"context"
	"sync"

	"github.com/uzih05/DOMO/internal/core/domain"
)

// MessageRepository is the in-memory chat history used in tests and when no
// database is configured. Ids are assigned monotonically per repository.
type MessageRepository struct {
	mu       sync.Mutex
	nextID   int64
	messages []domain.ChatMessage
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{
		nextID:   1,
		messages: make([]domain.ChatMessage, 0),
	}
}

func (r *MessageRepository) Append(ctx context.Context, msg domain.ChatMessage) (domain.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg.ID = r.nextID
	r.nextID++
	r.messages = append(r.messages, msg)
	return msg, nil
}

func (r *MessageRepository) After(ctx context.Context, project domain.ProjectID, afterID int64) ([]domain.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.ChatMessage
	for _, msg := range r.messages {
		if msg.ProjectID == project && msg.ID > afterID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (r *MessageRepository) LastID(ctx context.Context, project domain.ProjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var last int64
	for _, msg := range r.messages {
		if msg.ProjectID == project && msg.ID > last {
			last = msg.ID
		}
	}
	return last, nil
}
