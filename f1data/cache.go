package f1data

import (
	"sync"
	"time"
)

// Cache stores raw upstream responses keyed by session
// (e.g. "2025/14/results"). Implementations decide expiry.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, val []byte)
}

type cacheEntry struct {
	val     []byte
	expires time.Time
}

// MemoryCache is an in-process Cache with a fixed TTL per entry.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewMemoryCache returns a MemoryCache whose entries expire after ttl.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached value for key if present and unexpired.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().After(e.expires) {
		return nil, false
	}
	return e.val, true
}

// Set stores val under key, replacing any existing entry.
func (c *MemoryCache) Set(key string, val []byte) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{val: val, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
}
