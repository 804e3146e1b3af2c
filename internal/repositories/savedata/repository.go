// Package savedata loads and stores native player save files
package savedata

import (
	"context"

	"github.com/KirkDiggler/cobblemon-transporter/internal/nbt"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=savedatamock github.com/KirkDiggler/cobblemon-transporter/internal/repositories/savedata Repository

// Document is a decoded save file
type Document struct {
	// Name is the root tag name, usually empty
	Name string

	Root *nbt.Compound

	// Compressed records whether the file was gzipped, so Save writes it
	// back the same way
	Compressed bool
}

// Repository defines the interface for save file access
type Repository interface {
	// Load reads and decodes the save file at path
	Load(ctx context.Context, path string) (*Document, error)

	// Save replaces the file at path with doc
	Save(ctx context.Context, doc *Document, path string) error
}
