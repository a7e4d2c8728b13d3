// Package cache provides a generic, thread-safe LRU (Least Recently Used) cache
// with optional per-entry expiry.
//
// The cache evicts the least recently used item when it reaches its configured
// capacity, and, when a TTL is configured, treats entries older than the TTL
// (measured from their last write) as absent. Expired entries are purged
// lazily, the next time they are looked up.
//
// # Usage
//
//	jars := cache.NewLRUCache[string, []string](1000, cache.WithTTL(3*time.Minute))
//
//	jars.Put("203.0.113.7", []string{"sid=1"})
//
//	// Get marks the entry as recently used
//	v, ok := jars.Get("203.0.113.7")
//
//	// Peek and Has leave recency and expiry untouched
//	v, ok = jars.Peek("203.0.113.7")
//	ok = jars.Has("203.0.113.7")
//
//	// Upsert is an atomic read-modify-write and counts as a write
//	jars.Upsert("203.0.113.7", func(old []string, _ bool) []string {
//		return append(old, "theme=dark")
//	})
//
// Reads never extend an entry's lifetime; only Put and Upsert restart the
// expiry clock.
//
// # Eviction callbacks
//
// SetEvictCallback registers a function called for every entry that leaves the
// cache through capacity eviction or expiry.
//
// # Thread Safety
//
// All operations are guarded by a single mutex and can be called concurrently
// from multiple goroutines.
//
// # Performance Characteristics
//
//   - Get, Peek, Has, Put, Upsert: O(1) average case
package cache
