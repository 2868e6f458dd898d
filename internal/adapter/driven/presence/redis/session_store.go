package redis

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/uzih05/DOMO/internal/core/domain"
	"github.com/uzih05/DOMO/internal/core/port"
)

// SessionStore resolves session tokens against Redis. The auth service
// writes `session:{token}` keys holding the user id, with its own TTL.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func (s *SessionStore) Resolve(ctx context.Context, token string) (domain.UserID, error) {
	val, err := s.rdb.Get(ctx, "session:"+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, port.ErrNoSession
	}
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, port.ErrNoSession
	}
	return domain.UserID(id), nil
}
