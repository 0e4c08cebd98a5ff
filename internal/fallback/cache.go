// internal/fallback/cache.go
package fallback

import (
	"context"
	"sync"
	"time"

	"route-optimizer/internal/common/logger"
	"route-optimizer/internal/models"
)

// RouteCache is the TTL-keyed store of previously computed route results.
// A miss is a nil result, not an error. Implementations must be safe for
// concurrent reads, writes, and cleanup.
type RouteCache interface {
	Get(ctx context.Context, key string) (*models.OptimizationResult, error)
	Put(ctx context.Context, key string, payload models.OptimizationResult) error
	Cleanup(ctx context.Context) (removed int, err error)
	Size(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}

// MemoryCache is the in-process RouteCache: a map guarded by one RWMutex.
// Expiry is lazy on read; Cleanup sweeps expired entries in bulk.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]models.CacheEntry
	ttl     time.Duration

	// now is swappable for expiry tests.
	now func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]models.CacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached payload while unexpired, nil otherwise. Expired
// entries stay in the map until the next sweep.
func (c *MemoryCache) Get(_ context.Context, key string) (*models.OptimizationResult, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || entry.Expired(c.now()) {
		return nil, nil
	}

	payload := entry.Payload
	return &payload, nil
}

// Put stores a payload under key with the cache TTL. Entries are immutable
// once written; a second Put simply replaces the entry with a fresh stamp.
func (c *MemoryCache) Put(_ context.Context, key string, payload models.OptimizationResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = models.CacheEntry{
		Key:       key,
		Payload:   payload,
		Timestamp: c.now(),
		TTL:       c.ttl,
	}
	return nil
}

// Cleanup removes every entry whose age has reached its TTL, leaving
// unexpired entries untouched.
func (c *MemoryCache) Cleanup(_ context.Context) (int, error) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if entry.Expired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed, nil
}

// Size counts all entries, expired ones included until swept.
func (c *MemoryCache) Size(_ context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries), nil
}

func (c *MemoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]models.CacheEntry)
	return nil
}

// StartSweeper runs a periodic cleanup pass until ctx is cancelled.
func StartSweeper(ctx context.Context, cache RouteCache, interval time.Duration, log logger.Logger) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := cache.Cleanup(ctx)
				if err != nil {
					log.Warn("cache sweep failed", map[string]interface{}{"error": err.Error()})
					continue
				}
				if removed > 0 {
					log.Debug("cache sweep", map[string]interface{}{"removed": removed})
				}
			}
		}
	}()
}
