package testutils

import (
	"fmt"

	"github.com/KirkDiggler/cobblemon-transporter/internal/nbt"
	"github.com/KirkDiggler/cobblemon-transporter/internal/testutils/builders"
)

// Fixture identities
const (
	// TestTrainerUUID is the trainer id stored on fixture records
	TestTrainerUUID = "069a79f4-44e9-4726-a5be-fca90e38aaf5"

	// TestTrainerName is the username the fixture trainer resolves to
	TestTrainerName = "Notch"
)

// CreateTestRecord creates a native creature record with sensible defaults
func CreateTestRecord(species string, level int32) *nbt.Compound {
	return builders.NewRecordBuilder().
		WithSpecies("cobblemon:" + species).
		WithLevel(level).
		Build()
}

// CreateTestParty creates a party container with the given records in
// Slot0, Slot1 and so on. A nil record leaves the slot absent.
func CreateTestParty(records ...*nbt.Compound) *nbt.Compound {
	root := nbt.NewCompound()
	for i, record := range records {
		if record != nil {
			root.Set(fmt.Sprintf("Slot%d", i), record)
		}
	}
	return root
}

// CreateTestDirectBoxes creates a container with `boxes` top-level BoxN
// compounds of empty slots
func CreateTestDirectBoxes(boxes int) *nbt.Compound {
	root := nbt.NewCompound()
	for b := 0; b < boxes; b++ {
		root.Set(fmt.Sprintf("Box%d", b), nbt.NewCompound())
	}
	return root
}

// CreateTestNestedBoxes creates a container whose boxes live under pc
func CreateTestNestedBoxes(boxes int) *nbt.Compound {
	pc := CreateTestDirectBoxes(boxes)
	return nbt.NewCompound().Set("pc", pc)
}

// CreateTestBoxArray creates a container with pc.boxes as a list of
// {pokemon: [...]} compounds
func CreateTestBoxArray(boxes int) *nbt.Compound {
	list := nbt.NewList(nbt.KindCompound)
	for b := 0; b < boxes; b++ {
		_ = list.Append(nbt.NewCompound().Set("pokemon", nbt.NewList(nbt.KindCompound)))
	}
	return nbt.NewCompound().Set("pc", nbt.NewCompound().Set("boxes", list))
}

// PutInBox stores record at box/slot of a BoxN/SlotN container
func PutInBox(boxes *nbt.Compound, box, slot int, record *nbt.Compound) {
	boxes.EnsureCompound(fmt.Sprintf("Box%d", box)).Set(fmt.Sprintf("Slot%d", slot), record)
}
