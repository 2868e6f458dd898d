package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uzih05/DOMO/internal/core/domain"
	"github.com/uzih05/DOMO/internal/core/port"
)

// ProjectStore answers project existence checks against Postgres.
type ProjectStore struct {
	pool *pgxpool.Pool
}

func NewProjectStore(pool *pgxpool.Pool) *ProjectStore {
	return &ProjectStore{pool: pool}
}

func (s *ProjectStore) Exists(ctx context.Context, id domain.ProjectID) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1)`,
		int64(id),
	).Scan(&exists)
	return exists, err
}

// SessionStore resolves session cookies against the user_sessions table.
type SessionStore struct {
	pool *pgxpool.Pool
}

func NewSessionStore(pool *pgxpool.Pool) *SessionStore {
	return &SessionStore{pool: pool}
}

func (s *SessionStore) Resolve(ctx context.Context, token string) (domain.UserID, error) {
	var user int64
	err := s.pool.QueryRow(ctx,
		`SELECT user_id FROM user_sessions WHERE session_id = $1 AND expires_at > now()`,
		token,
	).Scan(&user)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, port.ErrNoSession
	}
	if err != nil {
		return 0, err
	}
	return domain.UserID(user), nil
}
