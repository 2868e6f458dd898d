package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/uzih05/DOMO/internal/core/domain"
	"github.com/uzih05/DOMO/internal/core/port"
)

const defaultChatPoll = time.Second

// Chat persists project chat messages and streams new ones to subscribers
// by polling the repository. Polling keeps the stream correct regardless of
// which process wrote the message.
type Chat struct {
	repo port.MessageRepository
	poll time.Duration
	log  zerolog.Logger
}

// NewChat builds the chat service. poll <= 0 selects the default interval
// of one second.
func NewChat(repo port.MessageRepository, poll time.Duration, log zerolog.Logger) *Chat {
	if poll <= 0 {
		poll = defaultChatPoll
	}
	return &Chat{
		repo: repo,
		poll: poll,
		log:  log,
	}
}

// Post validates and persists one chat message.
func (c *Chat) Post(ctx context.Context, project domain.ProjectID, sender domain.UserID, content string) (domain.ChatMessage, error) {
	msg, err := domain.NewChatMessage(project, sender, content)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	saved, err := c.repo.Append(ctx, msg)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	c.log.Debug().
		Int64("message_id", saved.ID).
		Str("project_id", project.String()).
		Str("user_id", sender.String()).
		Msg("Chat message stored")
	return saved, nil
}

// Stream pushes every message appended after the call, in id order, through
// send until the context ends or send fails. The cursor starts at the
// newest message present at connect time, so subscribers only see what
// happens while they are connected.
func (c *Chat) Stream(ctx context.Context, project domain.ProjectID, send func(domain.ChatMessage) error) error {
	lastID, err := c.repo.LastID(ctx, project)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			msgs, err := c.repo.After(ctx, project, lastID)
			if err != nil {
				return err
			}
			for _, msg := range msgs {
				if err := send(msg); err != nil {
					return err
				}
				lastID = msg.ID
			}
		}
	}
}
