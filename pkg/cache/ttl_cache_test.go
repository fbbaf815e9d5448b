package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCache(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := newCache[string, int](90*time.Second, func() time.Time { return now })

	assert.Zero(t, c.Remaining("acc-1"))

	c.Set("acc-1", 7)
	assert.Equal(t, 90*time.Second, c.Remaining("acc-1"))

	now = now.Add(60 * time.Second)
	assert.Equal(t, 30*time.Second, c.Remaining("acc-1"))

	now = now.Add(30 * time.Second)
	assert.Zero(t, c.Remaining("acc-1"))

	assert.Len(t, c.entries, 1)
	c.evictExpired()
	assert.Empty(t, c.entries)
}

func TestTTLCacheDeleteAndClose(t *testing.T) {
	c := New[string, string](time.Minute, time.Hour)
	defer c.Close()

	c.Set("k", "v")
	assert.Positive(t, c.Remaining("k"))
	c.Delete("k")
	assert.Zero(t, c.Remaining("k"))

	c.Close()
}
