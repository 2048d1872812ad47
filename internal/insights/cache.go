package insights

import "sync"

// AllMonthsKey is the cache key for unfiltered insights.
const AllMonthsKey = "all-months"

// CacheKey maps a month filter to its cache key.
func CacheKey(month string) string {
	if month == "" {
		return AllMonthsKey
	}
	return month
}

// Cache holds generated insights per month for the lifetime of a session.
// The caller owns it; nothing in the pipeline writes to it implicitly.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]Insight
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string][]Insight)}
}

// Get returns a copy of the insights cached for month.
func (c *Cache) Get(month string) ([]Insight, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[CacheKey(month)]
	if !ok {
		return nil, false
	}
	out := make([]Insight, len(v))
	copy(out, v)
	return out, true
}

// Put stores a copy of insights for month.
func (c *Cache) Put(month string, insights []Insight) {
	v := make([]Insight, len(insights))
	copy(v, insights)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[string][]Insight)
	}
	c.entries[CacheKey(month)] = v
}

// Len reports the number of cached months.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]Insight)
}

// GetOrGenerate returns the cached insights for month or calls generate
// and caches its result. Errors are not cached.
func (c *Cache) GetOrGenerate(month string, generate func() ([]Insight, error)) ([]Insight, bool, error) {
	if v, ok := c.Get(month); ok {
		return v, true, nil
	}
	v, err := generate()
	if err != nil {
		return nil, false, err
	}
	c.Put(month, v)
	return v, false, nil
}
