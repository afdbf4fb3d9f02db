package measure

// Cache stores precomputation results for a single extraction run. Entries
// are keyed by precomputation name plus canonical argument signature; an
// entry holds either the value or the error that made it unavailable.
// A run owns its cache exclusively, so no locking is needed.
type Cache struct {
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value any
	err   error
}

// NewCache returns an empty run-scoped cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// Put records a value or a failure under the given key. Existing entries
// are never overwritten: a failed step stays failed for the whole run.
func (c *Cache) Put(key string, value any, err error) {
	if _, ok := c.entries[key]; ok {
		return
	}
	c.entries[key] = cacheEntry{value: value, err: err}
}

// Lookup returns the entry for key. The third result reports whether the
// key was ever computed.
func (c *Cache) Lookup(key string) (any, error, bool) {
	e, ok := c.entries[key]
	return e.value, e.err, ok
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return len(c.entries)
}
