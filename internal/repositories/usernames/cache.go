package usernames

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
)

// CacheConfig holds the dependencies for the cache
type CacheConfig struct {
	Store Store
}

// Validate ensures all required dependencies are provided
func (c *CacheConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Store == nil {
		vb.RequiredField("Store")
	}

	return vb.Build()
}

// Cache is an in-memory username table backed by a Store. Nothing touches
// the store until Load or Flush is called.
type Cache struct {
	mu      sync.RWMutex
	store   Store
	entries map[string]string
	dirty   map[string]string
}

// NewCache creates an empty cache
func NewCache(cfg *CacheConfig) (*Cache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Cache{
		store:   cfg.Store,
		entries: make(map[string]string),
		dirty:   make(map[string]string),
	}, nil
}

func key(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Load merges the stored entries into the cache. Entries remembered since
// the last flush win over stored ones.
func (c *Cache) Load(ctx context.Context) error {
	stored, err := c.store.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load username cache")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for id, name := range stored {
		k := key(id)
		if _, pending := c.dirty[k]; !pending {
			c.entries[k] = name
		}
	}
	slog.DebugContext(ctx, "Loaded username cache", "entries", len(stored))
	return nil
}

// Lookup returns the cached name for id
func (c *Cache) Lookup(id string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	name, ok := c.entries[key(id)]
	return name, ok
}

// Remember caches name for id until the next Flush
func (c *Cache) Remember(id, name string) {
	k := key(id)
	if k == "" || name == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries[k] == name {
		return
	}
	c.entries[k] = name
	c.dirty[k] = name
}

// Len returns the number of cached names
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Flush writes the whole table when anything changed since the last flush
func (c *Cache) Flush(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.dirty) == 0 {
		return nil
	}

	snapshot := make(map[string]string, len(c.entries))
	for id, name := range c.entries {
		snapshot[id] = name
	}
	if err := c.store.Save(ctx, snapshot); err != nil {
		return errors.Wrap(err, "failed to flush username cache")
	}
	c.dirty = make(map[string]string)
	return nil
}
