// Package locator finds creature records inside a save file root,
// whatever layout the file uses.
package locator

import (
	"strconv"

	"github.com/KirkDiggler/cobblemon-transporter/internal/nbt"
	"github.com/KirkDiggler/cobblemon-transporter/internal/shape"
)

// Reason explains why no record was found
type Reason string

// Lookup failure reasons
const (
	ReasonNone         Reason = ""
	ReasonOutOfRange   Reason = "out of range"
	ReasonUnrecognized Reason = "structure unrecognized"
	ReasonEmpty        Reason = "no creature present"
)

// Result is the outcome of a lookup. Record is nil unless found.
type Result struct {
	Address  Address
	Record   *nbt.Compound
	Strategy string
	Reason   Reason
}

// Found reports whether a record was located
func (r Result) Found() bool {
	return r.Record != nil
}

// Strategy looks for a box slot in one layout. recognized is false when
// root does not use that layout at all.
type Strategy struct {
	Name string
	Find func(root *nbt.Compound, box, slot int) (record *nbt.Compound, recognized bool)
}

// Strategies are tried in order for box addresses
var Strategies = []Strategy{
	{Name: "direct boxes", Find: findDirect},
	{Name: "box array", Find: findBoxArray},
	{Name: "nested boxes", Find: findNested},
	{Name: "numeric keys", Find: findNumeric},
	{Name: "flat list", Find: findFlatList},
}

// Locate finds the record at addr. It never fails; the reason says why
// nothing was found.
func Locate(root *nbt.Compound, addr Address) Result {
	res := Result{Address: addr}
	if !addr.InRange() {
		res.Reason = ReasonOutOfRange
		return res
	}

	if addr.Party {
		res.Strategy = "party"
		if record, ok := occupied(root, shape.SlotKey(addr.Slot)); ok {
			res.Record = record
			return res
		}
		res.Reason = ReasonEmpty
		return res
	}

	recognized := false
	for _, strategy := range Strategies {
		record, ok := strategy.Find(root, addr.Box, addr.Slot)
		recognized = recognized || ok
		if record != nil {
			res.Record = record
			res.Strategy = strategy.Name
			return res
		}
	}

	res.Reason = ReasonUnrecognized
	if recognized {
		res.Reason = ReasonEmpty
	}
	return res
}

// occupied returns the compound under key when it holds anything
func occupied(c *nbt.Compound, key string) (*nbt.Compound, bool) {
	record, ok := c.Compound(key)
	if !ok || record.Len() == 0 {
		return nil, false
	}
	return record, true
}

func findDirect(root *nbt.Compound, box, slot int) (*nbt.Compound, bool) {
	b, ok := root.Compound(shape.BoxKey(box))
	if !ok {
		return nil, false
	}
	record, _ := occupied(b, shape.SlotKey(slot))
	return record, true
}

// boxArray returns pc.boxes when present
func boxArray(root *nbt.Compound) (*nbt.List, bool) {
	pc, ok := root.Compound(shape.ContainerKey)
	if !ok {
		return nil, false
	}
	return pc.List("boxes")
}

func findBoxArray(root *nbt.Compound, box, slot int) (*nbt.Compound, bool) {
	boxes, ok := boxArray(root)
	if !ok {
		return nil, false
	}
	if box >= boxes.Len() {
		return nil, true
	}
	b, ok := boxes.At(box).(*nbt.Compound)
	if !ok {
		return nil, true
	}
	members, ok := b.List("pokemon")
	if !ok {
		return nil, true
	}
	for _, record := range members.Compounds() {
		if n, ok := record.Integer("slot_number"); ok && n == int64(slot) {
			return record, true
		}
	}
	return nil, true
}

func findNested(root *nbt.Compound, box, slot int) (*nbt.Compound, bool) {
	pc, ok := root.Compound(shape.ContainerKey)
	if !ok {
		return nil, false
	}
	return findDirect(pc, box, slot)
}

func findNumeric(root *nbt.Compound, box, slot int) (*nbt.Compound, bool) {
	pc, ok := root.Compound(shape.ContainerKey)
	if !ok {
		return nil, false
	}
	b, ok := pc.Compound(strconv.Itoa(box))
	if !ok {
		return nil, false
	}
	record, _ := occupied(b, strconv.Itoa(slot))
	return record, true
}

func findFlatList(root *nbt.Compound, box, slot int) (*nbt.Compound, bool) {
	pc, ok := root.Compound(shape.ContainerKey)
	if !ok {
		return nil, false
	}
	members, ok := pc.List("pokemon")
	if !ok {
		return nil, false
	}
	for _, record := range members.Compounds() {
		b, okBox := record.Integer("box_number")
		s, okSlot := record.Integer("slot_number")
		if okBox && okSlot && b == int64(box) && s == int64(slot) {
			return record, true
		}
	}
	return nil, true
}
