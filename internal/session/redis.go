// File path: internal/session/redis.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionPrefix = "qp:session:"

// RedisStore persists session state in Redis. Keys carry no TTL unless one is
// configured; browser sessions expire on the client side, not here.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to the Redis instance named by REDIS_URL and
// verifies the connection before returning.
func NewRedisStore(ctx context.Context) (*RedisStore, error) {
	redisURL := strings.TrimSpace(os.Getenv("REDIS_URL"))
	if redisURL == "" {
		return nil, errors.New("REDIS_URL environment variable is required")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	ttl := time.Duration(0)
	if raw := strings.TrimSpace(os.Getenv("SESSION_TTL")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			ttl = parsed
		}
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

// NewRedisStoreFromClient wraps an existing client. Used by tests.
func NewRedisStoreFromClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) key(id string) string {
	return sessionPrefix + id
}

func (r *RedisStore) Get(ctx context.Context, id string) (State, bool, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return State{}, false, nil
		}
		return State{}, false, fmt.Errorf("get session %s: %w", id, err)
	}
	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return State{}, false, fmt.Errorf("decode session %s: %w", id, err)
	}
	return state, true, nil
}

func (r *RedisStore) Put(ctx context.Context, id string, state State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", id, err)
	}
	if err := r.client.Set(ctx, r.key(id), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("set session %s: %w", id, err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (r *RedisStore) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}
