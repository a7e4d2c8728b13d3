package cache

import (
	"container/list"
	"sync"
	"time"
)

type lruEntry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time // zero when the cache has no TTL
}

// Option configures an LRUCache.
type Option func(*options)

type options struct {
	ttl time.Duration
	now func() time.Time
}

// WithTTL makes every entry expire d after its last write.
// Reads never extend the lifetime of an entry.
func WithTTL(d time.Duration) Option {
	if d < 0 {
		panic("WithTTL: duration must not be negative")
	}
	return func(o *options) { o.ttl = d }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	if now == nil {
		panic("WithClock: nil clock")
	}
	return func(o *options) { o.now = now }
}

// LRUCache is a thread-safe LRU cache implementation with optional expiry.
// When the cache reaches its capacity, the least recently used item is evicted.
type LRUCache[K comparable, V any] struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time
	items    map[K]*list.Element
	eviction *list.List
	mu       sync.Mutex
	onEvict  func(key K, value V) // Callback for cleanup when items are evicted
}

// NewLRUCache creates a new LRU cache with the specified capacity.
// The capacity must be positive, otherwise it panics.
func NewLRUCache[K comparable, V any](capacity int, opts ...Option) *LRUCache[K, V] {
	if capacity <= 0 {
		panic("LRU cache capacity must be positive")
	}
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &LRUCache[K, V]{
		capacity: capacity,
		ttl:      o.ttl,
		now:      o.now,
		items:    make(map[K]*list.Element),
		eviction: list.New(),
	}
}

// SetEvictCallback sets a callback function that is called when items are evicted
// by capacity or expire. It runs with the cache lock held and must not call back
// into the cache.
func (c *LRUCache[K, V]) SetEvictCallback(fn func(key K, value V)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvict = fn
}

// Get retrieves a value from the cache and marks it as recently used.
// Returns the value and true if found, zero value and false otherwise.
func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.lookup(key); ok {
		c.eviction.MoveToFront(elem)
		return elem.Value.(*lruEntry[K, V]).value, true
	}

	var zero V
	return zero, false
}

// Peek retrieves a value without touching its recency or expiry.
func (c *LRUCache[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.lookup(key); ok {
		return elem.Value.(*lruEntry[K, V]).value, true
	}

	var zero V
	return zero, false
}

// Has reports whether a live entry exists for key. Like Peek it does not
// count as a use.
func (c *LRUCache[K, V]) Has(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.lookup(key)
	return ok
}

// Put adds or updates a value in the cache and restarts its expiry clock.
// If the cache is at capacity, the least recently used item is evicted.
// Returns the previous value if it existed, and a boolean indicating if it existed.
func (c *LRUCache[K, V]) Put(key K, value V) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	old, existed := c.peekLocked(key)
	c.store(key, value)
	return old, existed
}

// Upsert atomically replaces the value for key with fn(old, existed).
// The write restarts the expiry clock and marks the entry as recently used.
func (c *LRUCache[K, V]) Upsert(key K, fn func(old V, existed bool) V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	old, existed := c.peekLocked(key)
	value := fn(old, existed)
	c.store(key, value)
	return value
}

// Len returns the number of resident entries. Expired entries that have not
// been accessed since they expired are still counted.
func (c *LRUCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eviction.Len()
}

// Must be called with lock held. Expired entries are dropped on the way.
func (c *LRUCache[K, V]) lookup(key K) (*list.Element, bool) {
	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if c.expired(elem.Value.(*lruEntry[K, V])) {
		c.removeElement(elem)
		return nil, false
	}
	return elem, true
}

// Must be called with lock held.
func (c *LRUCache[K, V]) peekLocked(key K) (V, bool) {
	if elem, ok := c.lookup(key); ok {
		return elem.Value.(*lruEntry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Must be called with lock held.
func (c *LRUCache[K, V]) store(key K, value V) {
	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = c.now().Add(c.ttl)
	}

	if elem, ok := c.items[key]; ok {
		c.eviction.MoveToFront(elem)
		entry := elem.Value.(*lruEntry[K, V])
		entry.value = value
		entry.expiresAt = expiresAt
		return
	}

	entry := &lruEntry[K, V]{key: key, value: value, expiresAt: expiresAt}
	c.items[key] = c.eviction.PushFront(entry)

	if c.eviction.Len() > c.capacity {
		c.evictOldest()
	}
}

// Must be called with lock held.
func (c *LRUCache[K, V]) expired(entry *lruEntry[K, V]) bool {
	return !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt)
}

// Must be called with lock held.
func (c *LRUCache[K, V]) evictOldest() {
	elem := c.eviction.Back()
	if elem != nil {
		c.removeElement(elem)
	}
}

// Must be called with lock held.
func (c *LRUCache[K, V]) removeElement(elem *list.Element) {
	c.eviction.Remove(elem)
	entry := elem.Value.(*lruEntry[K, V])
	delete(c.items, entry.key)

	if c.onEvict != nil {
		c.onEvict(entry.key, entry.value)
	}
}
