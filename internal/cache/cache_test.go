package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetThenGet(t *testing.T) {
	c := New[string](DefaultTTL)
	c.Set("k", "v")

	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestGetMissing(t *testing.T) {
	c := New[int](DefaultTTL)

	_, ok := c.Get("absent")
	assert.False(t, ok)
}

func TestExpiryAfterTTL(t *testing.T) {
	now := time.Now()
	c := New[string](10 * time.Minute)
	c.now = func() time.Time { return now }

	c.Set("k", "v")

	// Just inside the TTL the value is still served.
	now = now.Add(10*time.Minute - time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	// Past the TTL the entry behaves as absent.
	now = now.Add(2 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestSetRefreshesTimestamp(t *testing.T) {
	now := time.Now()
	c := New[string](10 * time.Minute)
	c.now = func() time.Time { return now }

	c.Set("k", "old")
	now = now.Add(9 * time.Minute)
	c.Set("k", "new")
	now = now.Add(9 * time.Minute)

	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "new", got)
}
