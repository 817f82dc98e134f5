package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps the persisted state as one JSON value under
// Namespace, for deployments that want the dashboard state to survive
// host restarts.
type RedisStore struct {
	client  *redis.Client
	timeout time.Duration
}

// NewRedisStore connects a persister to the Redis instance at addr.
func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		client:  redis.NewClient(&redis.Options{Addr: addr}),
		timeout: 5 * time.Second,
	}
}

func (r *RedisStore) Save(state State) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := r.client.Set(ctx, Namespace, b, 0).Err(); err != nil {
		return fmt.Errorf("save state to redis: %w", err)
	}
	return nil
}

func (r *RedisStore) Load() (State, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	b, err := r.client.Get(ctx, Namespace).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return State{}, false, nil
		}
		return State{}, false, fmt.Errorf("load state from redis: %w", err)
	}

	var state State
	if err := json.Unmarshal(b, &state); err != nil {
		return State{}, false, fmt.Errorf("decode persisted state: %w", err)
	}
	return state, true, nil
}

// Close releases the underlying connection pool.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
