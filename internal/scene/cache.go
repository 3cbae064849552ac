package scene

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of reference paths kept by
// NewCachedQuerier when no size is given.
const DefaultCacheSize = 256

// CachedQuerier memoizes successful ReferenceFile lookups. Failed lookups are
// not cached so a reference repaired in the host is picked up on the next
// query.
type CachedQuerier struct {
	q     Querier
	cache *lru.Cache[string, string]
}

// NewCachedQuerier wraps q with an LRU cache of the given size.
func NewCachedQuerier(q Querier, size int) (*CachedQuerier, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("creating reference cache: %w", err)
	}
	return &CachedQuerier{q: q, cache: cache}, nil
}

// References implements ReferenceLister. The list itself is never cached.
func (c *CachedQuerier) References(ctx context.Context) ([]string, error) {
	return c.q.References(ctx)
}

// ReferenceFile implements ReferenceResolver.
func (c *CachedQuerier) ReferenceFile(ctx context.Context, id string) (string, error) {
	if path, ok := c.cache.Get(id); ok {
		return path, nil
	}
	path, err := c.q.ReferenceFile(ctx, id)
	if err != nil {
		return "", err
	}
	c.cache.Add(id, path)
	return path, nil
}

// Purge drops every cached path.
func (c *CachedQuerier) Purge() {
	c.cache.Purge()
}

// Len returns the number of cached paths.
func (c *CachedQuerier) Len() int {
	return c.cache.Len()
}
