package memory

import (
	"context"
	"sync"
	"time"

	"github.com/seokhojung/befunweb/internal/imagecache"
)

type entry struct {
	exists  bool
	expires time.Time
}

// Cache implements imagecache.Cache with an in-memory map.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates an in-memory cache whose entries expire after ttl.
func New(ttl time.Duration, opts ...Option) *Cache {
	if ttl <= 0 {
		ttl = imagecache.DefaultTTL
	}
	c := &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached existence of path.
func (c *Cache) Get(_ context.Context, path string) (bool, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[path]
	c.mu.RUnlock()

	if !ok {
		return false, false, nil
	}
	if !c.now().Before(e.expires) {
		c.mu.Lock()
		if cur, ok := c.entries[path]; ok && cur.expires.Equal(e.expires) {
			delete(c.entries, path)
		}
		c.mu.Unlock()
		return false, false, nil
	}
	return e.exists, true, nil
}

// Set records the existence of path.
func (c *Cache) Set(_ context.Context, path string, exists bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = entry{exists: exists, expires: c.now().Add(c.ttl)}
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
