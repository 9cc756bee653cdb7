package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSetGet(t *testing.T) {
	c := NewCache(time.Minute, time.Minute)

	c.Set("key", "value", time.Minute)
	got, found := c.Get("key")
	require.True(t, found)
	assert.Equal(t, "value", got)

	c.Delete("key")
	_, found = c.Get("key")
	assert.False(t, found)
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(time.Minute, time.Minute)

	c.Set("short", 1, 10*time.Millisecond)
	c.Set("forever", 2, NoExpiration)

	time.Sleep(30 * time.Millisecond)

	_, found := c.Get("short")
	assert.False(t, found)
	_, found = c.Get("forever")
	assert.True(t, found)
}

func TestGetTyped(t *testing.T) {
	c := NewCache(time.Minute, time.Minute)
	c.Set("number", 42, time.Minute)

	got, ok := GetTyped[int](c, "number")
	require.True(t, ok)
	assert.Equal(t, 42, got)

	_, ok = GetTyped[string](c, "number")
	assert.False(t, ok)

	_, ok = GetTyped[int](c, "missing")
	assert.False(t, ok)
}
