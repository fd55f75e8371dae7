// Package ratecache memoizes resolved expected rates for the currently
// displayed bill grid. Resolution is invoked once per grid cell per edit
// cycle, so callers memoize by (date, supplier, item) and clear the whole
// cache whenever the underlying daily rates or markup rules change, or when
// the grid selection changes.
package ratecache

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

type key struct {
	date       string
	supplierID snowflake.ID
	itemName   string
}

// Cache is an explicit memo object passed into rate-resolution call sites.
// It is never ambient global state; the owning controller invalidates it.
type Cache struct {
	mu      sync.Mutex
	entries map[key]float64
}

func New() *Cache {
	return &Cache{entries: make(map[key]float64)}
}

// GetOrCompute returns the memoized rate for the cell, computing and storing
// it on a miss.
func (c *Cache) GetOrCompute(date string, supplierID snowflake.ID, itemName string, compute func() float64) float64 {
	k := key{date: date, supplierID: supplierID, itemName: itemName}

	c.mu.Lock()
	defer c.mu.Unlock()

	if rate, ok := c.entries[k]; ok {
		return rate
	}
	rate := compute()
	c.entries[k] = rate
	return rate
}

// Invalidate drops every memoized rate.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[key]float64)
}

// Len reports the number of memoized cells.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
