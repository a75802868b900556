package matrix

import (
	"sync"

	"github.com/rcalderon/recruitops-api-go/pkg/models"
)

// Key identifies one memoized week matrix. OverrideVersion and PlanVersion
// fold the mutable stores into the key, so stale entries are simply never
// looked up again after a store change.
type Key struct {
	Role            string
	Week            int
	Campaign        bool
	OverrideVersion uint64
	PlanVersion     uint64
}

// Cache memoizes generated week matrices. Eviction is FIFO; the cache is a
// performance guard against recomputation storms, not a correctness layer.
type Cache struct {
	mu      sync.RWMutex
	limit   int
	entries map[Key]*models.WeekMatrix
	order   []Key
}

// NewCache creates a cache holding at most limit matrices.
func NewCache(limit int) *Cache {
	if limit <= 0 {
		limit = 128
	}
	return &Cache{
		limit:   limit,
		entries: make(map[Key]*models.WeekMatrix),
	}
}

// Get returns the cached matrix for key, if present.
func (c *Cache) Get(k Key) (*models.WeekMatrix, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.entries[k]
	return m, ok
}

// Put stores a matrix, evicting the oldest entry when full.
func (c *Cache) Put(k Key, m *models.WeekMatrix) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[k]; ok {
		c.entries[k] = m
		return
	}
	for len(c.entries) >= c.limit {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[k] = m
	c.order = append(c.order, k)
}

// Len reports the number of cached matrices.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
