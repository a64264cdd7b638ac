package cache_test

import (
	"testing"
	"time"

	"restaurant/internal/adapters/out/cache"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	table, err := kernel.NewTableNumber(1)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), table, "s-1", time.Now())
	require.NoError(t, err)
	return o
}

func TestOrderCache_ExpiresAfterTTL(t *testing.T) {
	clk := &clock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := cache.NewOrderCache(time.Minute, clk.Now)
	o := newOrder(t)

	c.Set(o)
	got, ok := c.Get(o.ID())
	require.True(t, ok)
	assert.Same(t, o, got)

	clk.now = clk.now.Add(time.Minute)
	_, ok = c.Get(o.ID())
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len(), "expired entries stay until purged")

	assert.Equal(t, 1, c.Purge())
	assert.Equal(t, 0, c.Len())
}

func TestOrderCache_Invalidate(t *testing.T) {
	c := cache.NewOrderCache(time.Hour, nil)
	o := newOrder(t)
	c.Set(o)

	c.Invalidate(o.ID())

	_, ok := c.Get(o.ID())
	assert.False(t, ok)
}

func TestOrderCache_PurgeKeepsFresh(t *testing.T) {
	clk := &clock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := cache.NewOrderCache(time.Minute, clk.Now)
	stale, fresh := newOrder(t), newOrder(t)

	c.Set(stale)
	clk.now = clk.now.Add(45 * time.Second)
	c.Set(fresh)
	clk.now = clk.now.Add(30 * time.Second)

	assert.Equal(t, 1, c.Purge())
	_, ok := c.Get(fresh.ID())
	assert.True(t, ok)
}

func TestOrderCache_FillSkipsLoadsOverlappingInvalidate(t *testing.T) {
	c := cache.NewOrderCache(time.Hour, nil)
	stale := newOrder(t)

	generation := c.Generation()
	c.Invalidate(stale.ID())

	assert.False(t, c.Fill(stale, generation))
	_, ok := c.Get(stale.ID())
	assert.False(t, ok)

	assert.True(t, c.Fill(stale, c.Generation()))
	_, ok = c.Get(stale.ID())
	assert.True(t, ok)
}
