package scraper

import (
	"sync"

	"toolscout/internal/domain"
)

// Cache stores scrape results keyed by the raw URL string.
type Cache interface {
	Get(url string) (*domain.ScrapedMetadata, bool)
	Set(url string, meta *domain.ScrapedMetadata)
	Clear()
	Len() int
}

// MemoryCache is an unbounded process-lifetime Cache. Each Set replaces any
// previous value for the key.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*domain.ScrapedMetadata
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]*domain.ScrapedMetadata)}
}

func (c *MemoryCache) Get(url string) (*domain.ScrapedMetadata, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.entries[url]
	return m, ok
}

func (c *MemoryCache) Set(url string, meta *domain.ScrapedMetadata) {
	c.mu.Lock()
	c.entries[url] = meta
	c.mu.Unlock()
}

func (c *MemoryCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*domain.ScrapedMetadata)
	c.mu.Unlock()
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
