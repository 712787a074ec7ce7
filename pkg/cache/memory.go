package cache

import (
	"context"
	"time"

	"github.com/puzpuzpuz/xsync/v4"
)

// MemoryCache is a concurrent in-process cache. Expired entries are dropped
// on read and by [MemoryCache.Sweep].
type MemoryCache struct {
	entries *xsync.Map[string, memoryEntry]
	now     func() time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryCache creates an empty in-process cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: xsync.NewMap[string, memoryEntry](),
		now:     time.Now,
	}
}

// Get returns a copy of the stored value.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	e, ok := c.entries.Load(key)
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		c.entries.Delete(key)
		return nil, false, nil
	}
	return append([]byte(nil), e.data...), true, nil
}

// Set stores a copy of data.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := memoryEntry{data: append([]byte(nil), data...)}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.entries.Store(key, e)
	return nil
}

// Delete removes key.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.entries.Delete(key)
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int { return c.entries.Size() }

// Sweep removes expired entries and returns how many were removed.
func (c *MemoryCache) Sweep() int {
	now := c.now()
	n := 0
	c.entries.Range(func(key string, e memoryEntry) bool {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			c.entries.Delete(key)
			n++
		}
		return true
	})
	return n
}

// Sweeper is implemented by caches that drop expired entries in bulk.
type Sweeper interface {
	Sweep() int
}

// SweepEvery calls s.Sweep once per interval until ctx is done. Each
// sweep that removes entries is passed to report, which may be nil.
func SweepEvery(ctx context.Context, s Sweeper, interval time.Duration, report func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 && report != nil {
				report(n)
			}
		}
	}
}

// Close drops all entries.
func (c *MemoryCache) Close() error {
	c.entries.Clear()
	return nil
}

var (
	_ Cache   = (*MemoryCache)(nil)
	_ Sweeper = (*MemoryCache)(nil)
)
