package port

import (
	"context"

	"github.com/uzih05/DOMO/internal/core/domain"
)

// MessageRepository stores project chat history. The chat stream polls
// After to pick up messages written by the REST side.
type MessageRepository interface {
	Append(ctx context.Context, msg domain.ChatMessage) (domain.ChatMessage, error)
	After(ctx context.Context, project domain.ProjectID, afterID int64) ([]domain.ChatMessage, error)
	LastID(ctx context.Context, project domain.ProjectID) (int64, error)
}

// ProjectStore answers room existence checks at connect time.
type ProjectStore interface {
	Exists(ctx context.Context, id domain.ProjectID) (bool, error)
}
