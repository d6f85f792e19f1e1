package query

import (
	"fmt"
	"slices"
	"sync"

	"github.com/couchcryptid/sightings-explorer/internal/domain"
	"github.com/couchcryptid/sightings-explorer/internal/observability"
)

// CachedEngine memoizes the aggregate queries of an Engine in an LRU cache.
// The dataset never changes, so entries never go stale. Counts and searches
// pass straight through.
type CachedEngine struct {
	*Engine
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedEngine wraps inner with a cache holding up to maxEntries results.
func NewCachedEngine(inner *Engine, maxEntries int, metrics *observability.Metrics) *CachedEngine {
	return &CachedEngine{
		Engine:  inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

// DistinctShapes returns a cached copy of Engine.DistinctShapes.
func (c *CachedEngine) DistinctShapes() []string {
	return cached(c, OpDistinctShapes, c.Engine.DistinctShapes)
}

// TopDurations returns a cached copy of Engine.TopDurations.
func (c *CachedEngine) TopDurations(n int) []domain.Frequency[float64] {
	return cached(c, fmt.Sprintf("%s:%d", OpTopDurations, n), func() []domain.Frequency[float64] {
		return c.Engine.TopDurations(n)
	})
}

// TopShapes returns a cached copy of Engine.TopShapes.
func (c *CachedEngine) TopShapes(n int) []domain.Frequency[string] {
	return cached(c, fmt.Sprintf("%s:%d", OpTopShapes, n), func() []domain.Frequency[string] {
		return c.Engine.TopShapes(n)
	})
}

// DistinctRegionValues returns a cached copy of Engine.DistinctRegionValues.
func (c *CachedEngine) DistinctRegionValues(kind domain.RegionKind) ([]string, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	return cached(c, fmt.Sprintf("%s:%s", OpDistinctRegionValues, kind), func() []string {
		vals, _ := c.Engine.DistinctRegionValues(kind)
		return vals
	}), nil
}

// TopRegions returns a cached copy of Engine.TopRegions.
func (c *CachedEngine) TopRegions(kind domain.RegionKind, n int) ([]domain.Frequency[string], error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	return cached(c, fmt.Sprintf("%s:%s:%d", OpTopRegions, kind, n), func() []domain.Frequency[string] {
		top, _ := c.Engine.TopRegions(kind, n)
		return top
	}), nil
}

// cached looks key up, computing and storing it on a miss. Callers always get
// their own copy of the slice.
func cached[T any](c *CachedEngine, key string, compute func() []T) []T {
	if v, ok := c.cache.get(key); ok {
		c.metrics.QueryCache.WithLabelValues("hit").Inc()
		return slices.Clone(v.([]T))
	}
	c.metrics.QueryCache.WithLabelValues("miss").Inc()

	result := compute()
	c.cache.put(key, result)
	return slices.Clone(result)
}

// lruCache is a simple thread-safe LRU cache of query results.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value any
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
