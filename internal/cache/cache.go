// Package cache memoizes the expensive steps of a render (ingest and
// priority-order build) keyed on a content hash, so repeatedly
// rendering the same document at different budgets only pays for
// parsing and ordering once. Grounded on the teacher's
// internal/cache/metrics_cache.go: lock-free sync.Map storage, a TTL
// checked on read, keys derived from a content hash rather than the
// raw bytes themselves.
package cache

import (
	"encoding/hex"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
)

// DefaultTTL matches the teacher's own cache default.
const DefaultTTL = 2 * time.Hour

// entry wraps a cached value with its insertion time for TTL checks.
type entry struct {
	value    any
	cachedAt int64 // UnixNano, read/written atomically
}

// OrderCache is a lock-free, content-hash-keyed cache for Order
// builds. One cache instance is meant to be shared across repeated
// renders of the same document at different budgets.
type OrderCache struct {
	entries sync.Map // map[string]*entry
	ttl     int64    // nanoseconds

	hits   int64
	misses int64
}

// NewOrderCache constructs a cache with the given TTL; a zero TTL
// disables expiry (entries are never removed).
func NewOrderCache(ttl time.Duration) *OrderCache {
	return &OrderCache{ttl: ttl.Nanoseconds()}
}

// Key derives a cache key from document content plus the config knobs
// that affect the order build (sampling/bias are part of the key since
// they change the result for the same bytes).
func Key(content []byte, configSuffix string) string {
	h := xxhash.Sum64(content)
	var buf [8]byte
	buf[0] = byte(h >> 56)
	buf[1] = byte(h >> 48)
	buf[2] = byte(h >> 40)
	buf[3] = byte(h >> 32)
	buf[4] = byte(h >> 24)
	buf[5] = byte(h >> 16)
	buf[6] = byte(h >> 8)
	buf[7] = byte(h)
	return hex.EncodeToString(buf[:]) + ":" + configSuffix
}

// Get returns the cached value for key if present and unexpired.
func (c *OrderCache) Get(key string) (any, bool) {
	v, ok := c.entries.Load(key)
	if !ok {
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}
	e := v.(*entry)
	if c.ttl > 0 && time.Now().UnixNano()-atomic.LoadInt64(&e.cachedAt) > c.ttl {
		c.entries.Delete(key)
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}
	atomic.AddInt64(&c.hits, 1)
	return e.value, true
}

// Put stores value under key, replacing any existing entry.
func (c *OrderCache) Put(key string, value any) {
	c.entries.Store(key, &entry{value: value, cachedAt: time.Now().UnixNano()})
}

// Stats reports hit/miss counters for diagnostics.
func (c *OrderCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}
