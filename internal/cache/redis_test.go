package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatube/yatube/pkg/config"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestCache_NamespaceKey(t *testing.T) {
	cache := &Cache{}

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{"simple key", "test", "yatube:test"},
		{"key with colon", "session:revoked:abc", "yatube:session:revoked:abc"},
		{"empty key", "", "yatube:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cache.namespaceKey(tt.key))
		})
	}
}

func TestCache_SetGetDelete(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	assert.True(t, mr.Exists("yatube:k"))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	ok, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.Delete(ctx, "k"))
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, redis.Nil)
}

func TestCache_TTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", 1, time.Second))
	mr.FastForward(2 * time.Second)

	ok, err := c.Exists(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_Disabled(t *testing.T) {
	c, err := New(&config.RedisConfig{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.False(t, c.Enabled())

	ctx := context.Background()
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheDisabled)
	assert.ErrorIs(t, c.Set(ctx, "k", "v", time.Minute), ErrCacheDisabled)
	_, err = c.Exists(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheDisabled)
	assert.NoError(t, c.Close())
}

func TestCache_Health(t *testing.T) {
	c, _ := newTestCache(t)
	assert.NoError(t, c.Health(context.Background()))

	var disabled *Cache
	assert.ErrorIs(t, disabled.Health(context.Background()), ErrCacheDisabled)
}
