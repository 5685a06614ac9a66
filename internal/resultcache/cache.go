// Package resultcache memoizes comparison results. Entries are keyed by an
// xxhash digest of the canonical JSON of both documents plus the differ
// settings, so equal documents hit regardless of key order or formatting.
package resultcache

import (
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	expirable "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/erraggy/schemadiff/differ"
	"github.com/erraggy/schemadiff/parser"
)

// DefaultMaxSize is used when New is given a non-positive size.
const DefaultMaxSize = 128

// Cache is a size-bounded LRU of comparison results with a per-entry TTL.
// It is safe for concurrent use. Cached results are shared between callers
// and must be treated as read-only.
//
// A nil *Cache is valid and caches nothing.
type Cache struct {
	lru       *expirable.LRU[uint64, *differ.ComparisonResult]
	maxSize   int
	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Size      int   `json:"size"`
	MaxSize   int   `json:"maxSize"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
}

// New creates a cache holding at most maxSize results, each for at most ttl.
// A zero ttl keeps entries until they are evicted.
func New(maxSize int, ttl time.Duration) *Cache {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	c := &Cache{maxSize: maxSize}
	c.lru = expirable.NewLRU[uint64, *differ.ComparisonResult](maxSize, func(uint64, *differ.ComparisonResult) {
		c.evictions.Add(1)
	}, ttl)
	return c
}

// Key derives the cache key for comparing source with target under d's settings.
func Key(d *differ.Differ, source, target any) uint64 {
	h := xxhash.New()
	_, _ = h.Write(parser.CanonicalJSON(source))
	// Canonical JSON never contains a raw NUL byte.
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(parser.CanonicalJSON(target))
	includeInfo := byte(0)
	if d.IncludeInfo {
		includeInfo = 1
	}
	_, _ = h.Write([]byte{0, byte(d.Mode), includeInfo})
	return h.Sum64()
}

// Get returns the cached result for key, if present and not expired.
func (c *Cache) Get(key uint64) (*differ.ComparisonResult, bool) {
	if c == nil {
		return nil, false
	}
	result, ok := c.lru.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return result, ok
}

// Add stores a result under key.
func (c *Cache) Add(key uint64, result *differ.ComparisonResult) {
	if c == nil {
		return
	}
	c.lru.Add(key, result)
}

// Compare returns the cached result of d.Compare(source, target), computing
// and storing it on a miss. The second return value reports a cache hit.
func (c *Cache) Compare(d *differ.Differ, source, target any) (*differ.ComparisonResult, bool) {
	if c == nil {
		return d.Compare(source, target), false
	}
	key := Key(d, source, target)
	if result, ok := c.Get(key); ok {
		return result, true
	}
	result := d.Compare(source, target)
	c.Add(key, result)
	return result, false
}

// Stats returns the current counters.
func (c *Cache) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	return Stats{
		Size:      c.lru.Len(),
		MaxSize:   c.maxSize,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
