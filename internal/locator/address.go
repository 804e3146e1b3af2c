package locator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
	"github.com/KirkDiggler/cobblemon-transporter/internal/shape"
)

// Address is a zero-indexed native position: a party slot, or a slot
// inside a box
type Address struct {
	Party bool
	Box   int
	Slot  int
}

// PartySlot addresses party slot i
func PartySlot(i int) Address {
	return Address{Party: true, Slot: i}
}

// BoxSlot addresses slot s of box b
func BoxSlot(b, s int) Address {
	return Address{Box: b, Slot: s}
}

// String renders the save file key form, "Slot3" or "Box0 -> Slot1"
func (a Address) String() string {
	if a.Party {
		return shape.SlotKey(a.Slot)
	}
	return fmt.Sprintf("%s -> %s", shape.BoxKey(a.Box), shape.SlotKey(a.Slot))
}

// InRange reports whether the address lies inside the native grid
func (a Address) InRange() bool {
	if a.Party {
		return a.Slot >= 0 && a.Slot < shape.PartySlots
	}
	return a.Box >= 0 && a.Box < shape.MaxBoxes && a.Slot >= 0 && a.Slot < shape.SlotsPerBox
}

// ParseAddress parses "Slot3" or "Box0 -> Slot1"
func ParseAddress(s string) (Address, error) {
	parts := strings.Split(s, "->")
	switch len(parts) {
	case 1:
		slot, err := index(parts[0], "Slot")
		if err != nil {
			return Address{}, err
		}
		return PartySlot(slot), nil
	case 2:
		box, err := index(parts[0], "Box")
		if err != nil {
			return Address{}, err
		}
		slot, err := index(parts[1], "Slot")
		if err != nil {
			return Address{}, err
		}
		return BoxSlot(box, slot), nil
	}
	return Address{}, errors.InvalidArgumentf("cannot parse slot address %q", s)
}

func index(part, prefix string) (int, error) {
	part = strings.TrimSpace(part)
	if !strings.HasPrefix(part, prefix) {
		return 0, errors.InvalidArgumentf("expected %s<n>, got %q", prefix, part)
	}
	n, err := strconv.Atoi(part[len(prefix):])
	if err != nil || n < 0 {
		return 0, errors.InvalidArgumentf("expected %s<n>, got %q", prefix, part)
	}
	return n, nil
}
