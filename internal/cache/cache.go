package cache

import (
	"sync"
	"time"
)

// DefaultTTL is how long a cached response stays fresh.
const DefaultTTL = 10 * time.Minute

type entry[T any] struct {
	value     T
	timestamp time.Time
}

// Cache is a keyed TTL cache for outbound call responses. Entries
// expire lazily: a Get past the TTL behaves as a miss, and nothing
// evicts stale entries proactively. There is no capacity limit and no
// persistence across restarts.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	ttl     time.Duration
	now     func() time.Time
}

// New creates a cache with the given TTL. A non-positive TTL falls back
// to DefaultTTL.
func New[T any](ttl time.Duration) *Cache[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache[T]{
		entries: make(map[string]entry[T]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the stored value if it is younger than the TTL.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.timestamp) >= c.ttl {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set stores a value under the key, stamping it with the current time.
func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[T]{value: value, timestamp: c.now()}
}
