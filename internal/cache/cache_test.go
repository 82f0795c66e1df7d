package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func store(c *ViewCache, path, val string) bool {
	return c.SetIfUnchanged(path, c.Generation(path), []byte(val))
}

func TestViewCacheSetGet(t *testing.T) {
	c := NewViewCache(time.Minute)

	_, ok := c.Get("/")
	assert.False(t, ok)

	assert.True(t, store(c, "/", "page"))
	got, ok := c.Get("/")
	assert.True(t, ok)
	assert.Equal(t, "page", string(got))
}

func TestViewCacheExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewViewCache(time.Second)
	c.now = func() time.Time { return now }

	store(c, "/", "page")
	now = now.Add(2 * time.Second)

	_, ok := c.Get("/")
	assert.False(t, ok)
}

func TestViewCacheRevalidate(t *testing.T) {
	c := NewViewCache(time.Minute)
	store(c, "/", "page")
	store(c, "/other", "other")

	var r Revalidator = c
	r.Revalidate(context.Background(), "/")

	_, ok := c.Get("/")
	assert.False(t, ok)
	_, ok = c.Get("/other")
	assert.True(t, ok)
}

func TestViewCacheDropsRenderOlderThanInvalidation(t *testing.T) {
	c := NewViewCache(time.Minute)

	gen := c.Generation("/")
	// a create commits and revalidates while the page is being rendered
	c.Revalidate(context.Background(), "/")

	assert.False(t, c.SetIfUnchanged("/", gen, []byte("stale")))
	_, ok := c.Get("/")
	assert.False(t, ok)

	assert.True(t, c.SetIfUnchanged("/", c.Generation("/"), []byte("fresh")))
	got, ok := c.Get("/")
	assert.True(t, ok)
	assert.Equal(t, "fresh", string(got))
}

func TestViewCacheGenerationIsPerPath(t *testing.T) {
	c := NewViewCache(time.Minute)
	gen := c.Generation("/other")

	c.Invalidate("/")

	assert.Equal(t, gen, c.Generation("/other"))
	assert.True(t, c.SetIfUnchanged("/other", gen, []byte("other")))
}

func TestViewCacheZeroTTLDisables(t *testing.T) {
	c := NewViewCache(0)
	assert.False(t, store(c, "/", "page"))

	_, ok := c.Get("/")
	assert.False(t, ok)
}
