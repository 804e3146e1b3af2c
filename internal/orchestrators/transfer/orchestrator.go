// Package transfer moves creatures between native save files and the JSON
// record store
package transfer

//go:generate mockgen -destination=mock/mock_service.go -package=transfermock github.com/KirkDiggler/cobblemon-transporter/internal/orchestrators/transfer Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/cobblemon-transporter/internal/allocator"
	"github.com/KirkDiggler/cobblemon-transporter/internal/entities"
	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
	"github.com/KirkDiggler/cobblemon-transporter/internal/extractor"
	"github.com/KirkDiggler/cobblemon-transporter/internal/locator"
	"github.com/KirkDiggler/cobblemon-transporter/internal/merger"
	"github.com/KirkDiggler/cobblemon-transporter/internal/repositories/records"
	"github.com/KirkDiggler/cobblemon-transporter/internal/repositories/savedata"
	"github.com/KirkDiggler/cobblemon-transporter/internal/shape"
)

// Service defines the interface for transfer operations
type Service interface {
	// Import extracts every creature in a save file into the record store
	Import(ctx context.Context, input *ImportInput) (*ImportOutput, error)

	// Export copies records into free slots of a save file
	Export(ctx context.Context, input *ExportInput) (*ExportOutput, error)

	// Merge overwrites one stored creature with a record, in place
	Merge(ctx context.Context, input *MergeInput) (*MergeOutput, error)

	// Repair resolves conflicting and missing box claims in the store
	Repair(ctx context.Context, input *RepairInput) (*RepairOutput, error)

	Inspect(ctx context.Context, input *InspectInput) (*InspectOutput, error)
}

// Config holds the dependencies for the transfer orchestrator
type Config struct {
	SaveData  savedata.Repository
	Records   records.Repository
	Extractor *extractor.Extractor
	Merger    *merger.Merger
	Allocator *allocator.Allocator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.SaveData == nil {
		vb.RequiredField("SaveData")
	}
	if c.Records == nil {
		vb.RequiredField("Records")
	}
	if c.Extractor == nil {
		vb.RequiredField("Extractor")
	}
	if c.Merger == nil {
		vb.RequiredField("Merger")
	}
	if c.Allocator == nil {
		vb.RequiredField("Allocator")
	}

	return vb.Build()
}

type orchestrator struct {
	saveData  savedata.Repository
	records   records.Repository
	extractor *extractor.Extractor
	merger    *merger.Merger
	allocator *allocator.Allocator
}

// NewOrchestrator creates a new transfer orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		saveData:  cfg.SaveData,
		records:   cfg.Records,
		extractor: cfg.Extractor,
		merger:    cfg.Merger,
		allocator: cfg.Allocator,
	}, nil
}

func (o *orchestrator) load(ctx context.Context, path string) (*savedata.Document, error) {
	if path == "" {
		return nil, errors.InvalidArgument("save path is required")
	}

	doc, err := o.saveData.Load(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", path)
	}
	return doc, nil
}

// Import extracts the party and every box of the save file. Slot failures
// are reported on the slot; only a failed load or a cancelled context
// returns an error.
func (o *orchestrator) Import(ctx context.Context, input *ImportInput) (*ImportOutput, error) {
	doc, err := o.load(ctx, input.SavePath)
	if err != nil {
		return nil, err
	}

	output := &ImportOutput{Shape: shape.Detect(doc.Root)}
	for _, res := range o.extractor.ExtractAll(ctx, doc.Root) {
		slot := &ImportedSlot{Result: res}
		output.Slots = append(output.Slots, slot)

		switch res.Status {
		case extractor.StatusNotFound:
			output.Summary.NotFound++
			continue
		case extractor.StatusDecodeError:
			output.Summary.DecodeErrors++
			continue
		case extractor.StatusFatal:
			return output, errors.WrapWithCode(res.Err, errors.CodeCanceled, "import canceled")
		}

		output.Summary.Found++
		if err := o.store(ctx, slot); err != nil {
			slog.WarnContext(ctx, "failed to store creature",
				"slot", res.Address.String(),
				"error", err.Error())
			slot.Err = err
			output.Summary.Failed++
			continue
		}
		output.Summary.Saved++
	}

	return output, nil
}

// store writes the creature, then claims its box address. Box slots keep
// their position in the save file; party creatures take the first free
// cell. A full grid leaves the record without an address.
func (o *orchestrator) store(ctx context.Context, slot *ImportedSlot) error {
	creature := slot.Result.Creature
	creature.SetAddress(nil)

	saved, err := o.records.Save(ctx, records.SaveInput{Creature: creature})
	if err != nil {
		return errors.Wrap(err, "failed to save record")
	}
	slot.Saved = saved.Name

	var preferred *entities.Address
	if at := slot.Result.Address; !at.Party {
		preferred = &entities.Address{Box: at.Box + 1, Slot: at.Slot + 1}
	}

	addr, moves, err := o.allocator.Claim(ctx, saved.Name, preferred)
	slot.Moves = moves
	switch {
	case errors.IsResourceExhausted(err):
		slog.WarnContext(ctx, "no free box slot, record saved without an address",
			"name", saved.Name)
		slot.Unplaced = true
		return nil
	case err != nil:
		return errors.Wrap(err, "failed to claim address")
	}

	creature.SetAddress(&addr)
	slot.Address = &addr
	return nil
}

// Export duplicates every record into the save file. The file is only
// rewritten when all of them fit.
func (o *orchestrator) Export(ctx context.Context, input *ExportInput) (*ExportOutput, error) {
	if len(input.RecordPaths) == 0 {
		return nil, errors.InvalidArgument("at least one record is required")
	}

	creatures := make([]*entities.Creature, 0, len(input.RecordPaths))
	for _, path := range input.RecordPaths {
		creature, err := records.ReadFile(path)
		if err != nil {
			return nil, err
		}
		creatures = append(creatures, creature)
	}

	doc, err := o.load(ctx, input.SavePath)
	if err != nil {
		return nil, err
	}

	placements, err := o.merger.DuplicateToFreeSlots(doc.Root, creatures)
	if err != nil {
		return nil, err
	}

	if err := o.saveData.Save(ctx, doc, input.SavePath); err != nil {
		return nil, errors.Wrapf(err, "failed to save %s", input.SavePath)
	}

	return &ExportOutput{Placements: placements}, nil
}

// Merge applies a record onto the creature stored at the address
func (o *orchestrator) Merge(ctx context.Context, input *MergeInput) (*MergeOutput, error) {
	if input.RecordPath == "" {
		return nil, errors.InvalidArgument("record path is required")
	}

	creature, err := records.ReadFile(input.RecordPath)
	if err != nil {
		return nil, err
	}

	doc, err := o.load(ctx, input.SavePath)
	if err != nil {
		return nil, err
	}

	found := locator.Locate(doc.Root, input.Address)
	if !found.Found() {
		return nil, errors.NotFoundf("no creature at %s", input.Address).
			WithMeta("reason", string(found.Reason))
	}

	report, err := o.merger.Apply(found.Record, creature)
	if err != nil {
		return nil, err
	}

	if err := o.saveData.Save(ctx, doc, input.SavePath); err != nil {
		return nil, errors.Wrapf(err, "failed to save %s", input.SavePath)
	}

	slog.DebugContext(ctx, "merged record",
		"address", input.Address.String(),
		"strategy", found.Strategy)

	return &MergeOutput{Strategy: found.Strategy, Report: report}, nil
}

// Repair reassigns box claims across the record store
func (o *orchestrator) Repair(ctx context.Context, _ *RepairInput) (*RepairOutput, error) {
	moves, err := o.allocator.Repair(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to repair addresses")
	}
	return &RepairOutput{Moves: moves}, nil
}

// Inspect reports the layout of a save file. Without an address only
// occupied cells are listed.
func (o *orchestrator) Inspect(ctx context.Context, input *InspectInput) (*InspectOutput, error) {
	doc, err := o.load(ctx, input.SavePath)
	if err != nil {
		return nil, err
	}

	output := &InspectOutput{
		Shape:    shape.Detect(doc.Root),
		BoxShape: shape.DetectBoxes(doc.Root),
		Root:     doc.Root,
	}

	if input.Address != nil {
		output.Located = []locator.Result{locator.Locate(doc.Root, *input.Address)}
		return output, nil
	}

	addrs := append(locator.PartyAddresses(doc.Root), locator.Enumerate(doc.Root, output.BoxShape)...)
	for _, addr := range addrs {
		if res := locator.Locate(doc.Root, addr); res.Found() {
			output.Located = append(output.Located, res)
		}
	}
	return output, nil
}
