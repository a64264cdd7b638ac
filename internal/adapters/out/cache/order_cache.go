// Package cache keeps recently read orders in memory for a fixed time.
package cache

import (
	"sync"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/metrics"

	"github.com/google/uuid"
)

type entry struct {
	order     *order.Order
	expiresAt time.Time
}

// OrderCache is a TTL cache of order snapshots. Cached orders are shared between readers
// and must not be changed; writers call Invalidate after committing instead.
//
// Readers that load from storage fill the cache through Fill with the Generation they
// observed before loading, so a snapshot read before a concurrent write is not cached
// after that write's Invalidate.
//
// Example:
//
//	gen := c.Generation()
//	o, err := load(ctx, id)
//	if err == nil {
//	    c.Fill(o, gen)
//	}
type OrderCache struct {
	mu         sync.RWMutex
	items      map[uuid.UUID]entry
	ttl        time.Duration
	now        func() time.Time
	generation uint64
}

// NewOrderCache creates a cache keeping entries for ttl. A nil now means time.Now.
func NewOrderCache(ttl time.Duration, now func() time.Time) *OrderCache {
	if now == nil {
		now = time.Now
	}
	return &OrderCache{
		items: make(map[uuid.UUID]entry),
		ttl:   ttl,
		now:   now,
	}
}

// Get returns the cached order while it has not expired.
func (c *OrderCache) Get(id kernel.UUID) (*order.Order, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, found := c.items[id.Bytes()]
	if !found || !c.now().Before(e.expiresAt) {
		return nil, false
	}
	return e.order, true
}

// Set stores o unconditionally.
func (c *OrderCache) Set(o *order.Order) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(o)
}

// Generation returns the invalidation counter. Take it before loading an order.
func (c *OrderCache) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}

// Fill stores o only when no Invalidate happened since generation was taken and
// reports whether it did.
func (c *OrderCache) Fill(o *order.Order, generation uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != generation {
		return false
	}
	c.set(o)
	return true
}

// Invalidate drops the entry of id and bumps the generation.
func (c *OrderCache) Invalidate(id kernel.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	delete(c.items, id.Bytes())
	metrics.OrderCacheItems.Set(float64(len(c.items)))
}

func (c *OrderCache) set(o *order.Order) {
	c.items[o.ID().Bytes()] = entry{order: o, expiresAt: c.now().Add(c.ttl)}
	metrics.OrderCacheItems.Set(float64(len(c.items)))
}

// Purge drops expired entries and returns how many were removed.
func (c *OrderCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	removed := 0
	for id, e := range c.items {
		if !now.Before(e.expiresAt) {
			delete(c.items, id)
			removed++
		}
	}
	metrics.OrderCacheItems.Set(float64(len(c.items)))
	return removed
}

// Len counts entries, expired ones included until purged.
func (c *OrderCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
