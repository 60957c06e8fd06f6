package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tbessonov/shopauth/internal/model"
)

var _ model.SessionStore = (*SessionStore)(nil)

const keyPrefix = "shopauth:refresh:"

const (
	replaceStatusNotFound int64 = 0
	replaceStatusMismatch int64 = 1
	replaceStatusRotated  int64 = 2
)

// replaceScript performs the compare-and-swap server-side so that concurrent
// rotations of the same stored value cannot interleave.
const replaceScript = `
local stored = redis.call("GET", KEYS[1])
if not stored then
  return 0
end
if stored ~= ARGV[1] then
  return 1
end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return 2
`

var replaceLua = redis.NewScript(replaceScript)

// SessionStore keeps one refresh-token key per identity in redis, expiring
// with the refresh-token lifetime.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a redis-backed session store. Records expire after
// ttl, matching the refresh-token lifetime.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func sessionKey(userKey string) string {
	return keyPrefix + userKey
}

func (s *SessionStore) Get(ctx context.Context, userKey string) (string, error) {
	value, err := s.client.Get(ctx, sessionKey(userKey)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrSessionNotFound
		}
		return "", fmt.Errorf("failed to get session record: %w", err)
	}
	return value, nil
}

func (s *SessionStore) Put(ctx context.Context, userKey, refreshToken string) error {
	if err := s.client.Set(ctx, sessionKey(userKey), refreshToken, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session record: %w", err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, userKey string) error {
	if err := s.client.Del(ctx, sessionKey(userKey)).Err(); err != nil {
		return fmt.Errorf("failed to delete session record: %w", err)
	}
	return nil
}

func (s *SessionStore) Replace(ctx context.Context, userKey, old, new string) error {
	status, err := replaceLua.Run(ctx, s.client,
		[]string{sessionKey(userKey)},
		old, new, s.ttl.Milliseconds(),
	).Int64()
	if err != nil {
		return fmt.Errorf("failed to run replace script: %w", err)
	}

	switch status {
	case replaceStatusRotated:
		return nil
	case replaceStatusMismatch:
		return model.ErrRefreshTokenMismatch
	case replaceStatusNotFound:
		return model.ErrSessionNotFound
	default:
		return fmt.Errorf("unexpected replace status %d", status)
	}
}
