package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/uzih05/DOMO/internal/core/domain"
)

// PresenceStore keeps workspace liveness in a Redis sorted set per
// workspace, scored by expiry time. Expired members are trimmed on read, so
// a crashed client drops off after the TTL without any sweeper.
type PresenceStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewPresenceStore(rdb *redis.Client, ttl time.Duration) *PresenceStore {
	return &PresenceStore{rdb: rdb, ttl: ttl}
}

func presenceKey(workspace domain.WorkspaceID) string {
	return "presence:workspace:" + workspace.String()
}

func (s *PresenceStore) Touch(ctx context.Context, workspace domain.WorkspaceID, user domain.UserID) error {
	key := presenceKey(workspace)
	expiry := float64(time.Now().Add(s.ttl).Unix())
	if err := s.rdb.ZAdd(ctx, key, redis.Z{Score: expiry, Member: user.String()}).Err(); err != nil {
		return err
	}
	// Let the whole set lapse if the workspace goes quiet.
	return s.rdb.Expire(ctx, key, 2*s.ttl).Err()
}

func (s *PresenceStore) Online(ctx context.Context, workspace domain.WorkspaceID) ([]domain.UserID, error) {
	key := presenceKey(workspace)
	now := strconv.FormatInt(time.Now().Unix(), 10)

	if err := s.rdb.ZRemRangeByScore(ctx, key, "-inf", "("+now).Err(); err != nil {
		return nil, err
	}
	members, err := s.rdb.ZRangeByScore(ctx, key, &redis.ZRangeBy{Min: now, Max: "+inf"}).Result()
	if err != nil {
		return nil, err
	}

	online := make([]domain.UserID, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		online = append(online, domain.UserID(id))
	}
	return online, nil
}
