// Package usernames caches player UUID to username lookups across runs
package usernames

import (
	"context"
)

//go:generate mockgen -destination=mock/mock_store.go -package=usernamesmock github.com/KirkDiggler/cobblemon-transporter/internal/repositories/usernames Store

// Store persists the cache contents
type Store interface {
	// Load returns every stored entry. A store that was never written is
	// empty, not an error.
	Load(ctx context.Context) (map[string]string, error)

	// Save writes entries, replacing any stored value for the same id
	Save(ctx context.Context, entries map[string]string) error
}
