package store

import (
	"sync"
	"time"
)

// Cache is a small in-memory, time-boxed cache used in front of the
// key-value tier's settings reads. Display processes are short-lived and
// read settings several times while building a render model; within the
// TTL window they reuse the decoded value instead of hitting the tier.
// It is never placed in front of the snapshot read path.
type Cache[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry[V]
}

type cacheEntry[V any] struct {
	value    V
	loadedAt time.Time
}

// DefaultCacheTTL bounds how stale a cached settings read may be.
const DefaultCacheTTL = time.Second

// NewCache creates a cache with the given TTL. A non-positive ttl falls
// back to DefaultCacheTTL.
func NewCache[V any](ttl time.Duration) *Cache[V] {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache[V]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry[V]),
	}
}

// GetOrLoad returns the cached value for key if it was loaded within the
// TTL, otherwise invokes loader and caches its result. A loader failure
// is returned to the caller and nothing is cached, so the next call
// retries cleanly.
func (c *Cache[V]) GetOrLoad(key string, loader func() (V, error)) (V, error) {
	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && c.now().Sub(entry.loadedAt) < c.ttl {
		c.mu.Unlock()
		return entry.value, nil
	}
	c.mu.Unlock()

	value, err := loader()
	if err != nil {
		return value, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry[V]{value: value, loadedAt: c.now()}
	c.mu.Unlock()
	return value, nil
}

// Invalidate drops the cached value for key, forcing the next read to
// load fresh. Called after every settings write.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
