// Package payloadcache wraps dgraph-io/ristretto as an in-process cache
// for resolved widget payloads. Resolution against the static catalogs is
// pure, so short-TTL caching is safe; payloads backed by mutable state
// (support tickets) must not be cached.
package payloadcache

import (
	"strings"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/mhollis/agentcare/internal/domain/widget"
)

// Cache is a bounded LRU-ish cache keyed by widget kind plus id list.
type Cache struct {
	c   *ristretto.Cache[string, widget.Payload]
	ttl time.Duration
}

// New creates a cache holding at most maxEntries resolved payloads, each
// expiring after ttl.
func New(maxEntries int64, ttl time.Duration) (*Cache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, widget.Payload]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{c: c, ttl: ttl}, nil
}

// Key builds the cache key for a kind and id list.
func Key(kind widget.Kind, ids []string) string {
	return string(kind) + "|" + strings.Join(ids, ",")
}

// Get retrieves a cached payload.
func (c *Cache) Get(key string) (widget.Payload, bool) {
	return c.c.Get(key)
}

// Set stores a payload with the configured TTL. Each entry costs 1.
func (c *Cache) Set(key string, p widget.Payload) {
	c.c.SetWithTTL(key, p, 1, c.ttl)
}

// Close releases cache resources.
func (c *Cache) Close() {
	c.c.Close()
}
