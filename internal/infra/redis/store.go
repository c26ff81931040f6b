package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"quizdeck-client/internal/domain"
)

// Store keeps session keys in Redis, for setups where the session should
// follow the user across machines. A ttl of zero keeps entries until an
// explicit logout.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if err == redis.Nil {
		return "", domain.ErrKeyNotFound
	}
	return value, err
}

// Set refreshes the TTL on every write, so an active session never expires
// under the user.
func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.key(key), value, s.ttl).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *Store) key(key string) string {
	return "quizdeck:session:" + key
}
