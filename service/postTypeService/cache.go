package postTypeService

import (
	"sync"

	"github.com/Matt-17/Dropblog/models"
)

// Cache - load-once cache of the active post type list.
// Owned by the server wiring and handed to the handlers that need it, so its
// lifetime and invalidation points are visible instead of hiding in a package
// global. In a multi-process deployment each process has its own cache and
// may briefly serve stale types after a write from another process; that is
// accepted at this scale.
type Cache struct {
	mu     sync.Mutex
	loaded bool
	types  []models.PostType
	load   func() ([]models.PostType, error)
}

// NewCache - creates a cache around the given loader
func NewCache(load func() ([]models.PostType, error)) *Cache {
	return &Cache{load: load}
}

// Get - returns the cached active post types, loading them on first use
func (c *Cache) Get() ([]models.PostType, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		types, err := c.load()
		if err != nil {
			return nil, err
		}
		c.types = types
		c.loaded = true
	}
	return c.types, nil
}

// Invalidate - drops the cached list so the next Get reloads it
// Called after every post type create, update or delete
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
	c.types = nil
}
