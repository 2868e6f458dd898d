package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uzih05/DOMO/internal/core/domain"
)

// MessageRepository stores chat history in Postgres.
type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

func (r *MessageRepository) Append(ctx context.Context, msg domain.ChatMessage) (domain.ChatMessage, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO chat_messages (project_id, user_id, content, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		int64(msg.ProjectID), int64(msg.UserID), msg.Content, msg.CreatedAt,
	).Scan(&msg.ID)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	return msg, nil
}

func (r *MessageRepository) After(ctx context.Context, project domain.ProjectID, afterID int64) ([]domain.ChatMessage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, project_id, user_id, content, created_at
		 FROM chat_messages
		 WHERE project_id = $1 AND id > $2
		 ORDER BY id`,
		int64(project), afterID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ChatMessage
	for rows.Next() {
		var msg domain.ChatMessage
		if err := rows.Scan(&msg.ID, &msg.ProjectID, &msg.UserID, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, msg)
	}
	return out, rows.Err()
}

func (r *MessageRepository) LastID(ctx context.Context, project domain.ProjectID) (int64, error) {
	var last int64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(id), 0) FROM chat_messages WHERE project_id = $1`,
		int64(project),
	).Scan(&last)
	return last, err
}
