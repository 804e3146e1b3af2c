// Package records stores NormalizedRecords as one JSON file per creature
package records

import (
	"context"

	"github.com/KirkDiggler/cobblemon-transporter/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=recordsmock github.com/KirkDiggler/cobblemon-transporter/internal/repositories/records Repository

// Record is one stored creature
type Record struct {
	// Name is the file name inside the store directory
	Name string

	Creature *entities.Creature
}

// ListOutput contains every readable record
type ListOutput struct {
	Records []*Record
}

// SaveInput contains the creature to persist
type SaveInput struct {
	Creature *entities.Creature
}

// SaveOutput names the file the creature was written to
type SaveOutput struct {
	Name string
	Path string
}

// SetAddressInput moves a stored record. A nil Address clears the claim.
type SetAddressInput struct {
	Name    string
	Address *entities.Address
}

// Repository defines the interface for record storage operations
type Repository interface {
	// List returns every readable record in file-name order
	List(ctx context.Context) (*ListOutput, error)

	// Save writes a new record file. An existing file holding a different
	// creature is never overwritten.
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// SetAddress rewrites only the box and slot of a stored record
	SetAddress(ctx context.Context, input SetAddressInput) error
}
