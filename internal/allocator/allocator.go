// Package allocator keeps the record store mapped onto a conflict-free
// grid of box and slot addresses.
package allocator

import (
	"context"
	"log/slog"
	"sort"

	"github.com/KirkDiggler/cobblemon-transporter/internal/entities"
	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
	"github.com/KirkDiggler/cobblemon-transporter/internal/repositories/records"
)

// Grid defaults
const (
	DefaultBoxes       = 30
	DefaultSlotsPerBox = 30
)

// Config holds the dependencies for the allocator
type Config struct {
	Records     records.Repository
	Boxes       int
	SlotsPerBox int
}

// Validate ensures all required dependencies are provided and fills the
// grid defaults
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Records == nil {
		vb.RequiredField("Records")
	}
	if c.Boxes == 0 {
		c.Boxes = DefaultBoxes
	}
	if c.SlotsPerBox == 0 {
		c.SlotsPerBox = DefaultSlotsPerBox
	}
	if c.Boxes < 0 {
		vb.InvalidField("Boxes", "must be positive")
	}
	if c.SlotsPerBox < 0 {
		vb.InvalidField("SlotsPerBox", "must be positive")
	}

	return vb.Build()
}

// Move describes one record whose claim changed. To is nil when the claim
// was cleared.
type Move struct {
	Name string
	From *entities.Address
	To   *entities.Address
}

// Allocator assigns addresses to stored records
type Allocator struct {
	records     records.Repository
	boxes       int
	slotsPerBox int
}

// New creates an allocator
func New(cfg *Config) (*Allocator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Allocator{
		records:     cfg.Records,
		boxes:       cfg.Boxes,
		slotsPerBox: cfg.SlotsPerBox,
	}, nil
}

// InGrid reports whether addr names a cell of the grid
func (a *Allocator) InGrid(addr entities.Address) bool {
	return addr.Box >= 1 && addr.Box <= a.boxes && addr.Slot >= 1 && addr.Slot <= a.slotsPerBox
}

// FindFreeAddress returns the first unclaimed cell in (box, slot) order
func (a *Allocator) FindFreeAddress(ctx context.Context) (entities.Address, error) {
	list, err := a.records.List(ctx)
	if err != nil {
		return entities.Address{}, errors.Wrap(err, "failed to list records")
	}

	taken := make(map[entities.Address]bool)
	for _, r := range list.Records {
		if addr := r.Creature.Address(); addr != nil {
			taken[*addr] = true
		}
	}

	addr, ok := a.firstFree(taken)
	if !ok {
		return entities.Address{}, a.capacityExceeded()
	}
	return addr, nil
}

// ResolveConflicts moves every record other than excludingName off claimed.
// Displaced records go to the next free cell, or lose their claim when the
// grid is full.
func (a *Allocator) ResolveConflicts(ctx context.Context, claimed entities.Address, excludingName string) ([]Move, error) {
	list, err := a.records.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list records")
	}

	taken := map[entities.Address]bool{claimed: true}
	var displaced []*records.Record
	for _, r := range list.Records {
		if r.Name == excludingName {
			continue
		}
		addr := r.Creature.Address()
		if addr == nil {
			continue
		}
		if *addr == claimed {
			displaced = append(displaced, r)
			continue
		}
		taken[*addr] = true
	}

	moves := make([]Move, 0, len(displaced))
	for _, r := range displaced {
		move := Move{Name: r.Name, From: entities.Ptr(claimed)}
		if next, ok := a.firstFree(taken); ok {
			taken[next] = true
			move.To = entities.Ptr(next)
		}
		if err := a.persist(ctx, r, move.To); err != nil {
			return moves, err
		}
		slog.InfoContext(ctx, "Moved conflicting record", "name", r.Name, "from", claimed.String(), "to", describe(move.To))
		moves = append(moves, move)
	}
	return moves, nil
}

// Claim gives the named record preferred, moving anything already there.
// A nil or out-of-grid preference is replaced with the first free cell.
func (a *Allocator) Claim(ctx context.Context, name string, preferred *entities.Address) (entities.Address, []Move, error) {
	if name == "" {
		return entities.Address{}, nil, errors.InvalidArgument("name is required")
	}

	if preferred == nil || !a.InGrid(*preferred) {
		addr, err := a.FindFreeAddress(ctx)
		if err != nil {
			return entities.Address{}, nil, err
		}
		if err := a.records.SetAddress(ctx, records.SetAddressInput{Name: name, Address: &addr}); err != nil {
			return entities.Address{}, nil, errors.Wrap(err, "failed to claim address")
		}
		return addr, nil, nil
	}

	moves, err := a.ResolveConflicts(ctx, *preferred, name)
	if err != nil {
		return entities.Address{}, moves, err
	}
	if err := a.records.SetAddress(ctx, records.SetAddressInput{Name: name, Address: preferred}); err != nil {
		return entities.Address{}, moves, errors.Wrap(err, "failed to claim address")
	}
	return *preferred, moves, nil
}

// Repair walks every record in name order. The first claimant of a cell
// keeps it; duplicates, unaddressed and out-of-grid records are placed in
// the first free cells afterwards, or cleared when none remain.
func (a *Allocator) Repair(ctx context.Context) ([]Move, error) {
	list, err := a.records.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list records")
	}

	sorted := append([]*records.Record(nil), list.Records...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	taken := make(map[entities.Address]bool)
	var pending []*records.Record
	for _, r := range sorted {
		addr := r.Creature.Address()
		if addr != nil && a.InGrid(*addr) && !taken[*addr] {
			taken[*addr] = true
			continue
		}
		pending = append(pending, r)
	}

	var moves []Move
	for _, r := range pending {
		move := Move{Name: r.Name, From: r.Creature.Address()}
		if next, ok := a.firstFree(taken); ok {
			taken[next] = true
			move.To = entities.Ptr(next)
		}
		if move.From == nil && move.To == nil {
			slog.WarnContext(ctx, "No free address for record", "name", r.Name)
			continue
		}
		if err := a.persist(ctx, r, move.To); err != nil {
			return moves, err
		}
		moves = append(moves, move)
	}
	return moves, nil
}

func (a *Allocator) persist(ctx context.Context, r *records.Record, to *entities.Address) error {
	err := a.records.SetAddress(ctx, records.SetAddressInput{Name: r.Name, Address: to})
	if err != nil {
		return errors.Wrapf(err, "failed to move record %s", r.Name)
	}
	r.Creature.SetAddress(to)
	return nil
}

func (a *Allocator) firstFree(taken map[entities.Address]bool) (entities.Address, bool) {
	for box := 1; box <= a.boxes; box++ {
		for slot := 1; slot <= a.slotsPerBox; slot++ {
			addr := entities.Address{Box: box, Slot: slot}
			if !taken[addr] {
				return addr, true
			}
		}
	}
	return entities.Address{}, false
}

func (a *Allocator) capacityExceeded() error {
	return errors.ResourceExhaustedf("all %d box slots are claimed", a.boxes*a.slotsPerBox).
		WithMeta("boxes", a.boxes).
		WithMeta("slots_per_box", a.slotsPerBox)
}

func describe(addr *entities.Address) string {
	if addr == nil {
		return "unaddressed"
	}
	return addr.String()
}
