// Package extractor turns located native records into NormalizedRecords
package extractor

//go:generate mockgen -destination=mock/mock_resolver.go -package=extractormock github.com/KirkDiggler/cobblemon-transporter/internal/extractor UsernameResolver

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/KirkDiggler/cobblemon-transporter/internal/entities"
	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
	"github.com/KirkDiggler/cobblemon-transporter/internal/locator"
	"github.com/KirkDiggler/cobblemon-transporter/internal/nbt"
	"github.com/KirkDiggler/cobblemon-transporter/internal/schema"
	"github.com/KirkDiggler/cobblemon-transporter/internal/shape"
)

// UnknownTrainer is the trainer name used when none can be resolved
const UnknownTrainer = "Unknown"

// Status classifies a slot outcome
type Status int

// Slot outcomes
const (
	StatusFound Status = iota
	StatusNotFound
	StatusDecodeError
	StatusFatal
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not found"
	case StatusDecodeError:
		return "decode error"
	}
	return "fatal"
}

// SlotResult is the outcome of extracting one address
type SlotResult struct {
	Address  locator.Address
	Status   Status
	Creature *entities.Creature
	Report   *schema.DecodeReport
	Reason   locator.Reason
	Err      error
}

// UsernameResolver maps a trainer UUID to a username
type UsernameResolver interface {
	Username(ctx context.Context, id string) (string, error)
}

// Config holds the dependencies for the extractor
type Config struct {
	Codec *schema.Codec

	// Resolver is optional; without it unnamed trainers stay Unknown
	Resolver UsernameResolver
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Codec == nil {
		vb.RequiredField("Codec")
	}

	return vb.Build()
}

// Extractor reads creatures out of a save file root. It never mutates the
// root.
type Extractor struct {
	codec    *schema.Codec
	resolver UsernameResolver
}

// New creates an extractor
func New(cfg *Config) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Extractor{
		codec:    cfg.Codec,
		resolver: cfg.Resolver,
	}, nil
}

// Extract decodes the record at addr
func (e *Extractor) Extract(ctx context.Context, root *nbt.Compound, addr locator.Address) SlotResult {
	res := SlotResult{Address: addr}
	if err := ctx.Err(); err != nil {
		res.Status = StatusFatal
		res.Err = err
		return res
	}

	located := locator.Locate(root, addr)
	if !located.Found() {
		res.Status = StatusNotFound
		res.Reason = located.Reason
		return res
	}

	creature, report, err := e.codec.Decode(located.Record)
	res.Report = report
	if err != nil {
		slog.WarnContext(ctx, "record is missing identity fields",
			"slot", addr.String(),
			"error", err.Error())
		res.Status = StatusDecodeError
		res.Err = err
		return res
	}
	for _, issue := range report.Issues {
		slog.DebugContext(ctx, "field fell back to default",
			"slot", addr.String(),
			"field", issue.Field,
			"reason", issue.Message)
	}

	if creature.OriginalTrainer == nil {
		raw, _ := schema.OriginalTrainerUUID(located.Record)
		name, err := e.trainerName(ctx, raw)
		if err != nil {
			res.Status = StatusFatal
			res.Err = err
			return res
		}
		creature.OriginalTrainer = entities.Ptr(name)
	}

	res.Status = StatusFound
	res.Creature = creature
	return res
}

// trainerName resolves a stored trainer id. Values that are not UUIDs are
// already names. Only cancellation is returned as an error.
func (e *Extractor) trainerName(ctx context.Context, raw string) (string, error) {
	if raw == "" {
		return UnknownTrainer, nil
	}
	if _, err := uuid.Parse(raw); err != nil {
		return raw, nil
	}
	if e.resolver == nil {
		return UnknownTrainer, nil
	}

	name, err := e.resolver.Username(ctx, raw)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		slog.WarnContext(ctx, "failed to resolve trainer name",
			"uuid", raw,
			"error", err.Error())
		return UnknownTrainer, nil
	}
	if name == "" {
		return UnknownTrainer, nil
	}
	return name, nil
}

// ExtractAll walks the party slots, then the detected box layout. Empty
// cells found by the brute-force walk of an unknown layout are not
// reported. A fatal result ends the walk and is the last element.
func (e *Extractor) ExtractAll(ctx context.Context, root *nbt.Compound) []SlotResult {
	layout := shape.DetectBoxes(root)
	addrs := append(locator.PartyAddresses(root), locator.Enumerate(root, layout)...)

	var out []SlotResult
	for _, addr := range addrs {
		res := e.Extract(ctx, root, addr)
		if res.Status == StatusNotFound && layout == shape.Unknown && !addr.Party {
			continue
		}
		out = append(out, res)
		if res.Status == StatusFatal {
			break
		}
	}
	return out
}
