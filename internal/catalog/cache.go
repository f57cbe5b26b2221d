package catalog

import (
	"context"
	"sync"

	"eventkernel/internal/adapters"
)

// Cache wraps an adapters.Catalog with a memoized, explicitly-clearable
// snapshot of rooms and products. Rooms and Products are idempotent: the
// first call populates the cache, later calls return the same values until
// Clear is invoked.
type Cache struct {
	source adapters.Catalog

	roomsOnce sync.Once
	roomsErr  error
	rooms     []adapters.Room

	productsOnce sync.Once
	productsErr  error
	products     []adapters.Product

	mu sync.Mutex
}

// New builds a Cache over the given catalog source.
func New(source adapters.Catalog) *Cache {
	if source == nil {
		source = adapters.DefaultStaticCatalog()
	}
	return &Cache{source: source}
}

// Rooms returns the memoized room list, loading it from the source on first
// call.
func (c *Cache) Rooms(ctx context.Context) ([]adapters.Room, error) {
	c.mu.Lock()
	once := &c.roomsOnce
	c.mu.Unlock()

	once.Do(func() {
		c.rooms, c.roomsErr = c.source.Rooms(ctx)
	})
	if c.roomsErr != nil {
		return nil, c.roomsErr
	}
	out := make([]adapters.Room, len(c.rooms))
	copy(out, c.rooms)
	return out, nil
}

// Products returns the memoized product list, loading it from the source on
// first call.
func (c *Cache) Products(ctx context.Context) ([]adapters.Product, error) {
	c.mu.Lock()
	once := &c.productsOnce
	c.mu.Unlock()

	once.Do(func() {
		c.products, c.productsErr = c.source.Products(ctx)
	})
	if c.productsErr != nil {
		return nil, c.productsErr
	}
	out := make([]adapters.Product, len(c.products))
	copy(out, c.products)
	return out, nil
}

// Clear resets the memoized rooms and products so the next call reloads
// from the source (used by tests, matching original_source's
// clear_cached_rooms).
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomsOnce = sync.Once{}
	c.roomsErr = nil
	c.rooms = nil
	c.productsOnce = sync.Once{}
	c.productsErr = nil
	c.products = nil
}
