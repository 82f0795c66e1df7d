// Package cache holds rendered views and drops them when the data behind
// them changes.
package cache

import (
	"context"
	"sync"
	"time"
)

// Revalidator is notified after a successful write so any cached rendering
// of path is recomputed on its next read.
type Revalidator interface {
	Revalidate(ctx context.Context, path string)
}

// Nop ignores revalidation notifications.
type Nop struct{}

func (Nop) Revalidate(context.Context, string) {}

type entry struct {
	val []byte
	exp time.Time
}

// ViewCache is an in-memory path -> rendered page cache with a TTL.
// A TTL of zero disables caching.
//
// Each path carries a generation that Invalidate bumps. A render captures
// the generation before reading the store and hands it back to
// SetIfUnchanged, so a page built from data older than the last
// invalidation is never stored.
type ViewCache struct {
	mu  sync.RWMutex
	m   map[string]entry
	gen map[string]uint64
	ttl time.Duration
	now func() time.Time
}

func NewViewCache(ttl time.Duration) *ViewCache {
	return &ViewCache{
		m:   make(map[string]entry),
		gen: make(map[string]uint64),
		ttl: ttl,
		now: time.Now,
	}
}

func (c *ViewCache) Get(path string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.m[path]
	if !ok || c.now().After(e.exp) {
		return nil, false
	}
	return e.val, true
}

// Generation returns the current generation of path.
func (c *ViewCache) Generation(path string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen[path]
}

// SetIfUnchanged stores val for path unless path was invalidated after gen
// was read. It reports whether val was stored.
func (c *ViewCache) SetIfUnchanged(path string, gen uint64, val []byte) bool {
	if c.ttl <= 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen[path] != gen {
		return false
	}
	c.m[path] = entry{val: val, exp: c.now().Add(c.ttl)}
	return true
}

func (c *ViewCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, path)
	c.gen[path]++
}

// Revalidate implements Revalidator.
func (c *ViewCache) Revalidate(_ context.Context, path string) {
	c.Invalidate(path)
}
