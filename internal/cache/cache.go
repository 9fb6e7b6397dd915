// Package cache provides the short-lived in-memory cache injected into the
// CRM source. It uses patrickmn/go-cache for TTL-based expiry. The
// reconciliation core is cache-agnostic: behavior is identical with caching
// disabled, only the number of CRM round trips changes.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache wraps go-cache behind the small surface the sources need.
type Cache struct {
	store *gocache.Cache
}

// New creates a cache with the given default TTL and cleanup interval.
func New(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a value from the cache.
func (c *Cache) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	return c.store.Get(key)
}

// Set stores a value with the default TTL.
func (c *Cache) Set(key string, value any) {
	if c == nil {
		return
	}
	c.store.Set(key, value, gocache.DefaultExpiration)
}

// SetWithTTL stores a value with a custom TTL.
func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	if c == nil {
		return
	}
	c.store.Set(key, value, ttl)
}

// Delete removes a value from the cache.
func (c *Cache) Delete(key string) {
	if c == nil {
		return
	}
	c.store.Delete(key)
}

// Clear removes all items from the cache.
func (c *Cache) Clear() {
	if c == nil {
		return
	}
	c.store.Flush()
}
