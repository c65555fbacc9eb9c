package cache

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/jon4hz/funfacts/internal/config"
	"github.com/jon4hz/funfacts/internal/database"
)

const (
	CategoryCachePrefix = "funfacts-categories-"
	categoryCountsKey   = "counts"
)

// CategoryCache holds the per-category fact counts.
// A zero TTL disables caching.
type CategoryCache struct {
	cache *PrefixedCache[[]database.CategoryCount]
	ttl   time.Duration
}

// NewCategoryCache creates the category cache for the configured backend.
func NewCategoryCache(cfg *config.CacheConfig) (*CategoryCache, error) {
	if cfg == nil {
		cfg = &config.CacheConfig{Type: config.CacheTypeMemory}
	}
	c, err := newCacheInstanceByType(cfg)
	if err != nil {
		return nil, err
	}
	return &CategoryCache{
		cache: NewPrefixedCache[[]database.CategoryCount](c, cfg.Type, CategoryCachePrefix),
		ttl:   time.Duration(cfg.TTL) * time.Second,
	}, nil
}

// Get returns the cached counts. The bool is false on a miss.
func (c *CategoryCache) Get(ctx context.Context) ([]database.CategoryCount, bool) {
	if c == nil || c.ttl == 0 {
		return nil, false
	}
	counts, err := c.cache.Get(ctx, categoryCountsKey)
	if err != nil {
		log.Debug("Category cache miss", "error", err)
		return nil, false
	}
	return counts, true
}

// Set stores the counts until the TTL expires.
func (c *CategoryCache) Set(ctx context.Context, counts []database.CategoryCount) {
	if c == nil || c.ttl == 0 {
		return
	}
	if err := c.cache.Set(ctx, categoryCountsKey, counts, store.WithExpiration(c.ttl)); err != nil {
		log.Warn("Failed to cache category counts", "error", err)
	}
}

// Invalidate drops the cached counts, called after every fact mutation.
func (c *CategoryCache) Invalidate(ctx context.Context) {
	if c == nil || c.ttl == 0 {
		return
	}
	if err := c.cache.Delete(ctx, categoryCountsKey); err != nil {
		log.Warn("Failed to invalidate category cache", "error", err)
	}
}

// Stats describes the category cache in the service statistics.
type Stats struct {
	Type    config.CacheType `json:"type"`
	Enabled bool             `json:"enabled"`
	Hits    int              `json:"hits"`
	Misses  int              `json:"misses"`
}

// Stats returns the backend and the hit and miss counters.
func (c *CategoryCache) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	counters := c.cache.GetStats()
	return Stats{
		Type:    c.cache.GetType(),
		Enabled: c.ttl > 0,
		Hits:    counters.Hits,
		Misses:  counters.Miss,
	}
}
