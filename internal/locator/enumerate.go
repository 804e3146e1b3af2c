package locator

import (
	"github.com/KirkDiggler/cobblemon-transporter/internal/nbt"
	"github.com/KirkDiggler/cobblemon-transporter/internal/shape"
)

// PartyAddresses lists the occupied party slots of root
func PartyAddresses(root *nbt.Compound) []Address {
	var out []Address
	for i := 0; i < shape.PartySlots; i++ {
		if _, ok := occupied(root, shape.SlotKey(i)); ok {
			out = append(out, PartySlot(i))
		}
	}
	return out
}

// Enumerate lists the addresses worth probing for layout s. Known layouts
// yield their occupied slots in (box, slot) order; Unknown yields the whole
// box grid so every strategy gets a chance.
func Enumerate(root *nbt.Compound, s shape.Shape) []Address {
	switch s {
	case shape.Party:
		return PartyAddresses(root)
	case shape.DirectBoxes, shape.NestedBoxesDirect:
		boxes, _ := shape.BoxRoot(root, s)
		return directAddresses(boxes)
	case shape.NestedBoxesArray:
		return arrayAddresses(root)
	}

	out := make([]Address, 0, shape.MaxBoxes*shape.SlotsPerBox)
	for b := 0; b < shape.MaxBoxes; b++ {
		for slot := 0; slot < shape.SlotsPerBox; slot++ {
			out = append(out, BoxSlot(b, slot))
		}
	}
	return out
}

func directAddresses(boxes *nbt.Compound) []Address {
	var out []Address
	for b := 0; b < shape.MaxBoxes; b++ {
		box, ok := boxes.Compound(shape.BoxKey(b))
		if !ok {
			continue
		}
		for slot := 0; slot < shape.SlotsPerBox; slot++ {
			if _, ok := occupied(box, shape.SlotKey(slot)); ok {
				out = append(out, BoxSlot(b, slot))
			}
		}
	}
	return out
}

func arrayAddresses(root *nbt.Compound) []Address {
	boxes, ok := boxArray(root)
	if !ok {
		return nil
	}
	var out []Address
	for b := 0; b < boxes.Len() && b < shape.MaxBoxes; b++ {
		box, ok := boxes.At(b).(*nbt.Compound)
		if !ok {
			continue
		}
		members, _ := box.List("pokemon")
		taken := make([]bool, shape.SlotsPerBox)
		for _, record := range members.Compounds() {
			if n, ok := record.Integer("slot_number"); ok && n >= 0 && n < shape.SlotsPerBox {
				taken[n] = true
			}
		}
		for slot, ok := range taken {
			if ok {
				out = append(out, BoxSlot(b, slot))
			}
		}
	}
	return out
}
