package search

import (
	"time"

	"github.com/dgraph-io/ristretto"
)

// cacheTTL is spec §4.5's "cached in-memory with TTL = 6h keyed by
// (category, exact query)".
const cacheTTL = 6 * time.Hour

// Cache wraps a ristretto cost-aware cache keyed by (category, query).
type Cache struct {
	store *ristretto.Cache
}

// NewCache builds a ristretto-backed cache sized for a few thousand
// cached result sets.
func NewCache() (*Cache, error) {
	store, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     1 << 26,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{store: store}, nil
}

func cacheKey(category, query string) string {
	return category + "\x00" + query
}

// Get returns a cached result set for (category, query), if present.
func (c *Cache) Get(category, query string) ([]Result, bool) {
	v, found := c.store.Get(cacheKey(category, query))
	if !found {
		return nil, false
	}
	results, ok := v.([]Result)
	return results, ok
}

// Set stores a result set for (category, query) with the standard TTL.
func (c *Cache) Set(category, query string, results []Result) {
	c.store.SetWithTTL(cacheKey(category, query), results, int64(len(results))+1, cacheTTL)
	c.store.Wait()
}
