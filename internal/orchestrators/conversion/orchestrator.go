// Package conversion runs the external format converters over batches of
// files
package conversion

//go:generate mockgen -destination=mock/mock_service.go -package=conversionmock github.com/KirkDiggler/cobblemon-transporter/internal/orchestrators/conversion Service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/KirkDiggler/cobblemon-transporter/internal/clients/converter"
	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
)

// Service defines the interface for conversion operations
type Service interface {
	Convert(ctx context.Context, input *ConvertInput) (*ConvertOutput, error)
}

// Config holds the dependencies for the conversion orchestrator
type Config struct {
	Runner converter.Runner
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Runner == nil {
		vb.RequiredField("Runner")
	}

	return vb.Build()
}

type orchestrator struct {
	runner converter.Runner
}

// NewOrchestrator creates a new conversion orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{runner: cfg.Runner}, nil
}

// Convert runs the converter once per file, one at a time. A failed file
// does not stop the batch; a missing converter or cancellation does.
func (o *orchestrator) Convert(ctx context.Context, input *ConvertInput) (*ConvertOutput, error) {
	if len(input.Paths) == 0 {
		return nil, errors.InvalidArgument("at least one path is required")
	}

	files, err := expand(input.Paths, input.Direction.Extensions())
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.NotFoundf("no %s inputs found", input.Direction)
	}

	output := &ConvertOutput{}
	for _, path := range files {
		result, err := o.runner.Run(ctx, input.Direction, path)
		if errors.IsFailedPrecondition(err) || errors.IsCanceled(err) {
			return output, err
		}

		output.Files = append(output.Files, &ConvertedFile{Path: path, Result: result, Err: err})
		if err != nil {
			slog.WarnContext(ctx, "conversion failed",
				"input", path,
				"error", err.Error())
			output.Failed++
			continue
		}
		output.Succeeded++
	}

	return output, nil
}

func expand(paths, extensions []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			// The runner reports missing files per input
			files = append(files, path)
			continue
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", path)
		}
		for _, entry := range entries {
			ext := strings.ToLower(filepath.Ext(entry.Name()))
			if entry.IsDir() || !slices.Contains(extensions, ext) {
				continue
			}
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	return files, nil
}
