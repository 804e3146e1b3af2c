package usernames

import (
	"context"

	"github.com/KirkDiggler/cobblemon-transporter/internal/clients/mojang"
	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
)

// ResolverConfig holds the dependencies for the resolver
type ResolverConfig struct {
	Cache  *Cache
	Client mojang.Client
}

// Validate ensures all required dependencies are provided
func (c *ResolverConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Cache == nil {
		vb.RequiredField("Cache")
	}
	if c.Client == nil {
		vb.RequiredField("Client")
	}

	return vb.Build()
}

// Resolver answers username lookups from the cache, falling back to the
// profile service and remembering what it finds
type Resolver struct {
	cache  *Cache
	client mojang.Client
}

// NewResolver creates a resolver
func NewResolver(cfg *ResolverConfig) (*Resolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Resolver{
		cache:  cfg.Cache,
		client: cfg.Client,
	}, nil
}

// Username returns the name for id. Failed lookups are not cached.
func (r *Resolver) Username(ctx context.Context, id string) (string, error) {
	if name, ok := r.cache.Lookup(id); ok {
		return name, nil
	}

	name, err := r.client.Username(ctx, id)
	if err != nil {
		return "", err
	}
	r.cache.Remember(id, name)
	return name, nil
}
