package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/widgetlab/widget-cli/internal/model"
)

// cacheKey identifies a unique fetch scope.
type cacheKey struct {
	Root     string
	MaxDepth int
}

// cacheEntry holds a cached tree with its fetch timestamp.
type cacheEntry struct {
	tree      *model.Node
	timestamp time.Time
}

// Cache is a TTL-based cache in front of a Provider. It keeps repeated
// selector queries against the same scope on one consistent tree instead
// of refetching per query.
type Cache struct {
	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
	ttl     time.Duration
}

// NewCache creates a cache. A ttl of 0 disables caching.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[cacheKey]cacheEntry),
		ttl:     ttl,
	}
}

// Fetch returns a cached tree if within TTL, otherwise fetches fresh from
// the provider.
func (c *Cache) Fetch(ctx context.Context, p Provider, root string, maxDepth int) (*model.Node, error) {
	if c.ttl == 0 {
		return p.FetchTree(ctx, root, maxDepth)
	}

	key := cacheKey{Root: root, MaxDepth: maxDepth}

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && time.Since(entry.timestamp) < c.ttl {
		tree := entry.tree
		c.mu.Unlock()
		return tree, nil
	}
	c.mu.Unlock()

	tree, err := p.FetchTree(ctx, root, maxDepth)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{tree: tree, timestamp: time.Now()}
	c.mu.Unlock()

	return tree, nil
}

// Invalidate removes all cache entries for the given fetch root.
func (c *Cache) Invalidate(root string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.Root == root {
			delete(c.entries, k)
		}
	}
}

// InvalidateAll clears the entire cache.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]cacheEntry)
}
