// Package shape classifies the layout of a save file root
package shape

import (
	"fmt"

	"github.com/KirkDiggler/cobblemon-transporter/internal/nbt"
)

// Grid limits shared by every layout
const (
	PartySlots   = 6
	MaxBoxes     = 30
	SlotsPerBox  = 30
	ContainerKey = "pc"
)

// Shape is a recognized container layout
type Shape int

// Shapes in detection priority order
const (
	Unknown Shape = iota
	Party
	DirectBoxes
	NestedBoxesArray
	NestedBoxesDirect
)

func (s Shape) String() string {
	switch s {
	case Party:
		return "party"
	case DirectBoxes:
		return "direct boxes"
	case NestedBoxesArray:
		return "nested box array"
	case NestedBoxesDirect:
		return "nested boxes"
	}
	return "unknown"
}

// IsBoxes reports whether s is one of the box layouts
func (s Shape) IsBoxes() bool {
	return s == DirectBoxes || s == NestedBoxesArray || s == NestedBoxesDirect
}

// SlotKey is the key of party or box slot i
func SlotKey(i int) string { return fmt.Sprintf("Slot%d", i) }

// BoxKey is the key of box i
func BoxKey(i int) string { return fmt.Sprintf("Box%d", i) }

// Detect classifies root. Party wins over any box layout.
func Detect(root *nbt.Compound) Shape {
	if hasAny(root, PartySlots, SlotKey) {
		return Party
	}
	return DetectBoxes(root)
}

// DetectBoxes classifies root ignoring party slots
func DetectBoxes(root *nbt.Compound) Shape {
	if hasAny(root, MaxBoxes, BoxKey) {
		return DirectBoxes
	}

	pc, ok := root.Compound(ContainerKey)
	if !ok {
		return Unknown
	}
	if _, ok := pc.List("boxes"); ok {
		return NestedBoxesArray
	}
	if hasAny(pc, MaxBoxes, BoxKey) {
		return NestedBoxesDirect
	}
	return Unknown
}

// BoxRoot returns the compound holding BoxN keys for the direct layouts
func BoxRoot(root *nbt.Compound, s Shape) (*nbt.Compound, bool) {
	switch s {
	case DirectBoxes:
		return root, true
	case NestedBoxesDirect:
		return root.Compound(ContainerKey)
	}
	return nil, false
}

func hasAny(c *nbt.Compound, n int, key func(int) string) bool {
	for i := 0; i < n; i++ {
		if c.Has(key(i)) {
			return true
		}
	}
	return false
}
