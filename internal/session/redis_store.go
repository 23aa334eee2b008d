package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/discovery"
)

// RedisStore implements Store on Redis. The TTL maps directly onto the key
// expiry, so expired runs vanish without a cleanup job.
type RedisStore struct {
	client *redis.Client
}

// RedisConfig holds connection settings for the session store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.Addr, err)
	}
	return &RedisStore{client: client}, nil
}

// Put writes the session record as JSON under discovery:<id> with the TTL.
func (s *RedisStore) Put(ctx context.Context, sess discovery.Session, ttl time.Duration) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", sess.DiscoveryID, err)
	}
	if err := s.client.Set(ctx, Key(sess.DiscoveryID), data, ttl).Err(); err != nil {
		return fmt.Errorf("store session %s: %w", sess.DiscoveryID, err)
	}
	return nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("close redis client: %w", err)
	}
	return nil
}
