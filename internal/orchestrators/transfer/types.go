package transfer

import (
	"github.com/KirkDiggler/cobblemon-transporter/internal/allocator"
	"github.com/KirkDiggler/cobblemon-transporter/internal/entities"
	"github.com/KirkDiggler/cobblemon-transporter/internal/extractor"
	"github.com/KirkDiggler/cobblemon-transporter/internal/locator"
	"github.com/KirkDiggler/cobblemon-transporter/internal/merger"
	"github.com/KirkDiggler/cobblemon-transporter/internal/nbt"
	"github.com/KirkDiggler/cobblemon-transporter/internal/schema"
	"github.com/KirkDiggler/cobblemon-transporter/internal/shape"
)

// ImportInput names the save file to read
type ImportInput struct {
	SavePath string
}

// ImportedSlot is the outcome for one slot. Saved is the record file
// name, empty unless the creature was written to the store.
type ImportedSlot struct {
	Result  extractor.SlotResult
	Saved   string
	Address *entities.Address

	// Moves lists records displaced by this one's claim
	Moves []allocator.Move

	// Unplaced is set when the grid had no free address
	Unplaced bool
	Err      error
}

// ImportSummary counts slot outcomes
type ImportSummary struct {
	Found        int
	Saved        int
	NotFound     int
	DecodeErrors int
	Failed       int
}

// ImportOutput reports every slot of the save file
type ImportOutput struct {
	Shape   shape.Shape
	Slots   []*ImportedSlot
	Summary ImportSummary
}

// ExportInput names the save file and the records to write into it
type ExportInput struct {
	SavePath    string
	RecordPaths []string
}

// ExportOutput lists where each record landed, in input order
type ExportOutput struct {
	Placements []merger.Placement
}

// MergeInput updates the record at Address with the JSON at RecordPath
type MergeInput struct {
	SavePath   string
	RecordPath string
	Address    locator.Address
}

// MergeOutput reports the strategy that found the record and any skipped
// values
type MergeOutput struct {
	Strategy string
	Report   *schema.EncodeReport
}

// RepairInput is empty; the record store is fixed at construction
type RepairInput struct{}

// RepairOutput lists every claim that changed
type RepairOutput struct {
	Moves []allocator.Move
}

// InspectInput names the save file. A nil Address lists everything.
type InspectInput struct {
	SavePath string
	Address  *locator.Address
}

// InspectOutput describes the layout and the located records
type InspectOutput struct {
	Shape    shape.Shape
	BoxShape shape.Shape
	Root     *nbt.Compound
	Located  []locator.Result
}
