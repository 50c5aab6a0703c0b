package analysis

import (
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// rowKeySep cannot occur in a cell read from a delimited table.
const rowKeySep = "\x1f"

// RowCache keeps the results of recently analysed rows, so a row sent
// twice to the CLI or server is not extracted again. The least recently
// used row is evicted when the cache is full.
type RowCache struct {
	rows        map[string]Result
	accessTime  map[string]int64
	accessCount int64
	hits        int64
	maxRows     int
	mu          sync.Mutex
}

// NewRowCache creates a cache holding up to maxRows results.
func NewRowCache(maxRows int) *RowCache {
	return &RowCache{
		rows:       make(map[string]Result, maxRows),
		accessTime: make(map[string]int64, maxRows),
		maxRows:    maxRows,
	}
}

func rowKey(row []string) string {
	return strings.Join(row, rowKeySep)
}

// Get returns the cached result for row.
func (c *RowCache) Get(row []string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := rowKey(row)
	r, ok := c.rows[key]
	if ok {
		c.hits++
		c.accessTime[key] = c.nextAccessTime()
	}
	return r, ok
}

// Put stores the result for row.
func (c *RowCache) Put(row []string, r Result) {
	if c.maxRows <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	key := rowKey(row)
	if _, exists := c.rows[key]; !exists && len(c.rows) >= c.maxRows {
		c.evictLRU()
	}
	c.rows[key] = r
	c.accessTime[key] = c.nextAccessTime()
}

// Len is the number of cached rows.
func (c *RowCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.rows)
}

// Stats reports cache usage.
func (c *RowCache) Stats() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return map[string]int{
		"cachedRows": len(c.rows),
		"maxRows":    c.maxRows,
		"cacheHits":  int(c.hits),
	}
}

func (c *RowCache) nextAccessTime() int64 {
	c.accessCount++
	return c.accessCount
}

func (c *RowCache) evictLRU() {
	var oldestKey string
	var oldestTime int64 = math.MaxInt64

	for key, accessTime := range c.accessTime {
		if accessTime < oldestTime {
			oldestTime = accessTime
			oldestKey = key
		}
	}

	if oldestTime != math.MaxInt64 {
		delete(c.rows, oldestKey)
		delete(c.accessTime, oldestKey)
		log.Debugf("Evicted row %q from cache", strings.SplitN(oldestKey, rowKeySep, 2)[0])
	}
}
