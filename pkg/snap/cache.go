package snap

import (
	"sync"
	"time"

	"github.com/philipparndt/gosnap/pkg/geometry"
	"github.com/philipparndt/gosnap/pkg/mesh"
)

// CacheKey identifies a face by mesh identity and face index
type CacheKey struct {
	Mesh *mesh.Mesh
	Face int
}

type cacheEntry struct {
	feature  *geometry.CircleFeature // nil caches a failed fit
	inserted time.Time
}

// Cache memoizes circle detection per face. Entries expire after the TTL and
// the oldest inserted entry is evicted when the cache is full. It is safe for
// concurrent use.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	entries  map[CacheKey]cacheEntry
	order    []CacheKey // Insertion order, oldest first
	now      func() time.Time
}

// NewCache creates a cache holding at most capacity entries for ttl each
func NewCache(capacity int, ttl time.Duration) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[CacheKey]cacheEntry, capacity),
		order:    make([]CacheKey, 0, capacity),
		now:      time.Now,
	}
}

// Get looks up a key. The bool reports presence; a nil feature is a cached
// negative result. Expired entries are dropped and reported absent.
func (c *Cache) Get(key CacheKey) (*geometry.CircleFeature, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(entry.inserted) >= c.ttl {
		c.remove(key)
		return nil, false
	}
	if entry.feature == nil {
		return nil, true
	}
	feature := *entry.feature
	return &feature, true
}

// Put stores a result, overwriting any existing entry for the key
func (c *Cache) Put(key CacheKey, feature *geometry.CircleFeature) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var stored *geometry.CircleFeature
	if feature != nil {
		copied := *feature
		stored = &copied
	}

	if _, exists := c.entries[key]; exists {
		c.remove(key)
	} else if len(c.entries) >= c.capacity {
		c.remove(c.order[0])
	}

	c.entries[key] = cacheEntry{feature: stored, inserted: c.now()}
	c.order = append(c.order, key)
}

// Clear drops all entries. Call it whenever the mesh set changes.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
	c.order = c.order[:0]
}

// Len returns the number of stored entries, including expired ones not yet evicted
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Capacity returns the maximum number of entries
func (c *Cache) Capacity() int {
	return c.capacity
}

// TTL returns the entry lifetime
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// remove deletes a key; the caller holds the lock
func (c *Cache) remove(key CacheKey) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
