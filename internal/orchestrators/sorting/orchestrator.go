// Package sorting files stored records into per-generation folders
package sorting

//go:generate mockgen -destination=mock/mock_service.go -package=sortingmock github.com/KirkDiggler/cobblemon-transporter/internal/orchestrators/sorting Service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/KirkDiggler/cobblemon-transporter/internal/clients/pokeapi"
	"github.com/KirkDiggler/cobblemon-transporter/internal/entities"
	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
)

// DefaultConcurrency bounds species lookups in flight
const DefaultConcurrency = 4

// Service defines the interface for sorting operations
type Service interface {
	Sort(ctx context.Context, input *SortInput) (*SortOutput, error)
}

// Config holds the dependencies for the sorting orchestrator
type Config struct {
	Species     pokeapi.Client
	Concurrency int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Species == nil {
		vb.RequiredField("Species")
	}
	if c.Concurrency == 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.Concurrency < 0 {
		vb.InvalidField("Concurrency", "must be positive")
	}

	return vb.Build()
}

type orchestrator struct {
	species     pokeapi.Client
	concurrency int
	lookups     singleflight.Group
}

// NewOrchestrator creates a new sorting orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		species:     cfg.Species,
		concurrency: cfg.Concurrency,
	}, nil
}

// SpeciesFromName takes the species from a record file name, the part
// before the first underscore
func SpeciesFromName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	species, _, _ := strings.Cut(base, "_")
	return species
}

// Sort looks up every record's species and moves the file into its GenN
// folder. Per-file failures leave the file in place and are reported on
// the file.
func (o *orchestrator) Sort(ctx context.Context, input *SortInput) (*SortOutput, error) {
	if input.Dir == "" {
		return nil, errors.InvalidArgument("directory is required")
	}
	dest := input.Dest
	if dest == "" {
		dest = input.Dir
	}

	entries, err := os.ReadDir(input.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("directory %s not found", input.Dir)
		}
		return nil, errors.Wrap(err, "failed to read directory")
	}

	output := &SortOutput{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		output.Files = append(output.Files, &SortedFile{
			Name:    entry.Name(),
			Species: SpeciesFromName(entry.Name()),
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for _, file := range output.Files {
		file := file
		g.Go(func() error {
			file.DexNumber, file.Err = o.lookup(gctx, file.Species)
			// Only cancellation stops the group; lookup failures are per file
			if errors.IsCanceled(file.Err) {
				return file.Err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, file := range output.Files {
		if file.Err == nil {
			file.Err = o.move(input.Dir, dest, file)
		}
		if file.Err != nil {
			slog.WarnContext(ctx, "record not sorted",
				"file", file.Name,
				"error", file.Err.Error())
			output.Failed++
			continue
		}
		output.Moved++
	}

	return output, nil
}

// lookup shares one request between files of the same species
func (o *orchestrator) lookup(ctx context.Context, species string) (int, error) {
	if species == "" {
		return 0, errors.InvalidArgument("file name has no species")
	}

	v, err, _ := o.lookups.Do(strings.ToLower(species), func() (interface{}, error) {
		return o.species.SpeciesID(ctx, species)
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

func (o *orchestrator) move(dir, dest string, file *SortedFile) error {
	gen, ok := entities.GenerationOf(file.DexNumber)
	if !ok {
		return errors.OutOfRangef("dex number %d is outside every generation", file.DexNumber)
	}
	file.Generation = gen

	target := filepath.Join(dest, fmt.Sprintf("Gen%d", gen))
	if err := os.MkdirAll(target, 0o750); err != nil {
		return errors.Wrap(err, "failed to create generation folder")
	}

	file.Path = filepath.Join(target, file.Name)
	if err := os.Rename(filepath.Join(dir, file.Name), file.Path); err != nil {
		file.Path = ""
		return errors.Wrap(err, "failed to move record")
	}
	return nil
}
