package content

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// PostCache is an in-memory TTL cache over a Provider. It is itself a
// Provider.
type PostCache struct {
	mu      sync.RWMutex
	posts   []Post
	version string
	fetched time.Time
	ttl     time.Duration
	src     Provider
	now     func() time.Time
}

// NewPostCache creates a PostCache backed by src. A ttl of zero or less
// reloads src on every read.
func NewPostCache(src Provider, ttl time.Duration) *PostCache {
	return &PostCache{src: src, ttl: ttl, now: time.Now}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && c.now().Sub(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.mu.Unlock()
}

// ListPosts returns the cached collection, reloading it when stale.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ListPosts(ctx context.Context) ([]Post, error) {
	c.mu.RLock()
	if c.valid() {
		posts := c.posts
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.posts, nil
	}
	posts, err := c.src.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []Post{}
	}
	c.posts = posts
	c.version = Digest(posts)
	c.fetched = c.now()
	return c.posts, nil
}

// Version returns the Digest of the cached collection, reloading it when
// stale.
func (c *PostCache) Version(ctx context.Context) (string, error) {
	if _, err := c.ListPosts(ctx); err != nil {
		return "", err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version, nil
}

// Digest fingerprints a collection from every field of every post, in
// order. Processes serving the same posts compute the same digest.
func Digest(posts []Post) string {
	h := sha256.New()
	for _, p := range posts {
		m := p.Metadata
		for _, field := range []string{p.Slug, m.Title, m.PublishedAt, m.Summary, m.Image, m.Author, p.Content} {
			fmt.Fprintf(h, "%d:%s", len(field), field)
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil)[:8])
}

// GetPost returns the first cached post with the given slug, or ErrNotFound.
func (c *PostCache) GetPost(ctx context.Context, slug string) (Post, error) {
	return Resolve(ctx, c, slug)
}
