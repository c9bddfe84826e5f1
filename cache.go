package rtype

import "sync"

// Cache memoizes parsed descriptors. Lookup, build and insert run under one
// lock, so a descriptor is built at most once while the cache is enabled.
// Failed builds are not stored. The zero value is an enabled, empty cache.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]Type
	disabled bool
}

// NewCache returns an empty, enabled cache.
func NewCache() *Cache { return &Cache{} }

// GetOrInsert returns the entry for key, calling build to create it when
// missing. A disabled cache calls build every time and stores nothing.
func (c *Cache) GetOrInsert(key string, build func() (Type, error)) (Type, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disabled {
		return build()
	}
	if t, ok := c.entries[key]; ok {
		return t, nil
	}
	t, err := build()
	if err != nil {
		return nil, err
	}
	if c.entries == nil {
		c.entries = map[string]Type{}
	}
	c.entries[key] = t
	return t, nil
}

// Get returns the cached entry for key. A disabled cache has no entries.
func (c *Cache) Get(key string) (Type, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disabled {
		return nil, false
	}
	t, ok := c.entries[key]
	return t, ok
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = nil
	c.mu.Unlock()
}

// Disable bypasses the cache for reads and writes. Existing entries are kept
// and become visible again after Enable.
func (c *Cache) Disable() {
	c.mu.Lock()
	c.disabled = true
	c.mu.Unlock()
}

func (c *Cache) Enable() {
	c.mu.Lock()
	c.disabled = false
	c.mu.Unlock()
}

func (c *Cache) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.disabled
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
