// Package merger writes NormalizedRecords back into native save data,
// either over an existing record or as fresh copies in free slots.
package merger

import (
	"github.com/KirkDiggler/cobblemon-transporter/internal/entities"
	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
	"github.com/KirkDiggler/cobblemon-transporter/internal/locator"
	"github.com/KirkDiggler/cobblemon-transporter/internal/nbt"
	"github.com/KirkDiggler/cobblemon-transporter/internal/pkg/idgen"
	"github.com/KirkDiggler/cobblemon-transporter/internal/schema"
	"github.com/KirkDiggler/cobblemon-transporter/internal/shape"
)

// Config holds the dependencies for the merger
type Config struct {
	Codec         *schema.Codec
	QuadGenerator idgen.QuadGenerator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Codec == nil {
		vb.RequiredField("Codec")
	}
	if c.QuadGenerator == nil {
		vb.RequiredField("QuadGenerator")
	}

	return vb.Build()
}

// Merger applies creatures to native records
type Merger struct {
	codec *schema.Codec
	quads idgen.QuadGenerator
}

// New creates a merger
func New(cfg *Config) (*Merger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Merger{
		codec: cfg.Codec,
		quads: cfg.QuadGenerator,
	}, nil
}

// Placement is one creature written by DuplicateToFreeSlots
type Placement struct {
	Address locator.Address
	Report  *schema.EncodeReport
}

// Apply updates record in place with the fields present on creature
func (m *Merger) Apply(record *nbt.Compound, creature *entities.Creature) (*schema.EncodeReport, error) {
	report, err := m.codec.Encode(creature, record)
	if err != nil {
		return nil, errors.Wrap(err, "failed to merge record")
	}
	return report, nil
}

// Duplicate deep-copies template, gives the copy a fresh UUID and applies
// creature to it. Any uuid on creature is ignored. template is not changed.
func (m *Merger) Duplicate(template *nbt.Compound, creature *entities.Creature) (*nbt.Compound, *schema.EncodeReport, error) {
	if template == nil || creature == nil {
		return nil, nil, errors.InvalidArgument("template and creature are required")
	}

	quad := m.quads.GenerateQuad()
	fresh := *creature
	fresh.UUID = []int64{int64(quad[0]), int64(quad[1]), int64(quad[2]), int64(quad[3])}

	out := template.Clone()
	report, err := m.codec.Encode(&fresh, out)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to merge duplicate")
	}
	return out, report, nil
}

// slotRef is a free slot in a concrete container compound
type slotRef struct {
	addr   locator.Address
	parent *nbt.Compound
	key    string
}

// DuplicateToFreeSlots copies the first stored creature once per entry of
// creatures into free slots, in slot order. The root is only mutated when
// every copy could be built.
func (m *Merger) DuplicateToFreeSlots(root *nbt.Compound, creatures []*entities.Creature) ([]Placement, error) {
	if len(creatures) == 0 {
		return nil, nil
	}

	donor, free, err := scan(root, len(creatures))
	if err != nil {
		return nil, err
	}
	if donor == nil {
		return nil, errors.FailedPrecondition("no stored creature to use as a template")
	}
	if len(free) < len(creatures) {
		return nil, errors.ResourceExhaustedf("only %d free slots for %d creatures", len(free), len(creatures)).
			WithMeta("free", len(free)).
			WithMeta("needed", len(creatures))
	}

	copies := make([]*nbt.Compound, len(creatures))
	placements := make([]Placement, len(creatures))
	for i, creature := range creatures {
		dup, report, err := m.Duplicate(donor, creature)
		if err != nil {
			return nil, errors.Wrapf(err, "creature %d", i+1)
		}
		copies[i] = dup
		placements[i] = Placement{Address: free[i].addr, Report: report}
	}

	for i, ref := range free[:len(creatures)] {
		ref.parent.Set(ref.key, copies[i])
	}
	return placements, nil
}

// scan finds the donor record and up to `needed` free slots
func scan(root *nbt.Compound, needed int) (*nbt.Compound, []slotRef, error) {
	var donor *nbt.Compound
	var free []slotRef

	visit := func(addr locator.Address, parent *nbt.Compound, key string) bool {
		v, ok := parent.Get(key)
		record, isCompound := v.(*nbt.Compound)
		switch {
		case !ok || (isCompound && record.Len() == 0):
			free = append(free, slotRef{addr: addr, parent: parent, key: key})
		case isCompound && donor == nil && schema.HasIdentity(record):
			donor = record
		}
		return donor != nil && len(free) >= needed
	}

	layout := shape.Detect(root)
	if layout == shape.Party {
		for i := 0; i < shape.PartySlots; i++ {
			if visit(locator.PartySlot(i), root, shape.SlotKey(i)) {
				break
			}
		}
		return donor, free, nil
	}

	boxes, ok := shape.BoxRoot(root, layout)
	if !ok {
		return nil, nil, errors.FailedPreconditionf("cannot place creatures into a %s layout", layout).
			WithMeta("layout", layout.String())
	}
	for b := 0; b < shape.MaxBoxes; b++ {
		box, ok := boxes.Compound(shape.BoxKey(b))
		if !ok {
			break
		}
		for slot := 0; slot < shape.SlotsPerBox; slot++ {
			if visit(locator.BoxSlot(b, slot), box, shape.SlotKey(slot)) {
				return donor, free, nil
			}
		}
	}
	return donor, free, nil
}
