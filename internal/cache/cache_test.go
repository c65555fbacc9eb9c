package cache

import (
	"context"
	"testing"
	"time"

	"github.com/jon4hz/funfacts/internal/config"
	"github.com/jon4hz/funfacts/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixedCache(t *testing.T) {
	ctx := context.Background()
	c := NewPrefixedCache[map[string]int](newMemoryCache(), config.CacheTypeMemory, "test-")

	_, err := c.Get(ctx, "missing")
	assert.Error(t, err)

	require.NoError(t, c.Set(ctx, 1, map[string]int{"a": 1}))
	got, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1}, got)

	require.NoError(t, c.Delete(ctx, 1))
	_, err = c.Get(ctx, 1)
	assert.Error(t, err)

	assert.Equal(t, config.CacheTypeMemory, c.GetType())
	assert.NotNil(t, c.GetStats())
}

func TestPrefixedCache_StringValues(t *testing.T) {
	ctx := context.Background()
	raw := newMemoryCache()
	c := NewPrefixedCache[[]string](raw, config.CacheTypeMemory, "p-")

	require.NoError(t, raw.Set(ctx, "p-key", `["x","y"]`))
	got, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, got)

	require.NoError(t, raw.Set(ctx, "p-bad", 42))
	_, err = c.Get(ctx, "bad")
	assert.Error(t, err)
}

func TestCategoryCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewCategoryCache(&config.CacheConfig{Type: config.CacheTypeMemory, TTL: 60})
	require.NoError(t, err)

	_, ok := c.Get(ctx)
	assert.False(t, ok)

	counts := []database.CategoryCount{{Category: "biology", Count: 2}}
	c.Set(ctx, counts)
	got, ok := c.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, counts, got)

	c.Invalidate(ctx)
	_, ok = c.Get(ctx)
	assert.False(t, ok)

	assert.Equal(t, Stats{Type: config.CacheTypeMemory, Enabled: true, Hits: 1, Misses: 2}, c.Stats())
}

func TestCategoryCache_Expires(t *testing.T) {
	ctx := context.Background()
	c, err := NewCategoryCache(&config.CacheConfig{Type: config.CacheTypeMemory, TTL: 1})
	require.NoError(t, err)
	c.ttl = 20 * time.Millisecond

	c.Set(ctx, []database.CategoryCount{{Category: "space", Count: 1}})
	assert.Eventually(t, func() bool {
		_, ok := c.Get(ctx)
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestCategoryCache_Disabled(t *testing.T) {
	ctx := context.Background()
	c, err := NewCategoryCache(&config.CacheConfig{Type: config.CacheTypeMemory, TTL: 0})
	require.NoError(t, err)

	c.Set(ctx, []database.CategoryCount{{Category: "space", Count: 1}})
	_, ok := c.Get(ctx)
	assert.False(t, ok)

	assert.Equal(t, Stats{Type: config.CacheTypeMemory}, c.Stats())

	var nilCache *CategoryCache
	_, ok = nilCache.Get(ctx)
	assert.False(t, ok)
	nilCache.Invalidate(ctx)
	assert.Equal(t, Stats{}, nilCache.Stats())
}
