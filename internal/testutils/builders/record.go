// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/cobblemon-transporter/internal/nbt"
)

// RecordBuilder provides a fluent interface for building native creature
// compounds the way the game writes them
type RecordBuilder struct {
	record *nbt.Compound
}

// NewRecordBuilder creates a builder for a level 5 pikachu with every
// commonly stored tag populated
func NewRecordBuilder() *RecordBuilder {
	stats := func(v int32) *nbt.Compound {
		c := nbt.NewCompound()
		for _, stat := range []string{"hp", "attack", "defence", "special_attack", "special_defence", "speed"} {
			c.Set("cobblemon:"+stat, nbt.Int(v))
		}
		return c
	}

	moves := nbt.NewList(nbt.KindCompound)
	_ = moves.Append(move("thundershock"))
	_ = moves.Append(move("growl"))

	persistent := nbt.NewCompound().
		Set("MetLocation", nbt.String("viridian forest")).
		Set("MetLevel", nbt.Int(3)).
		Set("MetDate", nbt.String("2024-01-02")).
		Set("OriginGame", nbt.String("Cobblemon")).
		Set("Language", nbt.Int(2)).
		Set("TID", nbt.Long(12345))

	return &RecordBuilder{
		record: nbt.NewCompound().
			Set("Species", nbt.String("cobblemon:pikachu")).
			Set("Nickname", nbt.String("Sparky")).
			Set("Level", nbt.Int(5)).
			Set("Ability", nbt.NewCompound().Set("AbilityName", nbt.String("static"))).
			Set("IVs", stats(31)).
			Set("EVs", stats(0)).
			Set("MoveSet", moves).
			Set("Nature", nbt.String("cobblemon:hardy")).
			Set("PokemonOriginalTrainer", nbt.String("069a79f4-44e9-4726-a5be-fca90e38aaf5")).
			Set("Health", nbt.Int(20)).
			Set("Experience", nbt.Int(135)).
			Set("Shiny", nbt.Byte(0)).
			Set("CaughtBall", nbt.String("cobblemon:poke_ball")).
			Set("Gender", nbt.String("MALE")).
			Set("Friendship", nbt.Int(70)).
			Set("TeraType", nbt.String("cobblemon:electric")).
			Set("FormId", nbt.String("normal")).
			Set("UUID", nbt.IntList(11, 22, 33, 44)).
			Set("ScaleModifier", nbt.Float(1.0)).
			Set("PersistentData", persistent),
	}
}

func move(name string) *nbt.Compound {
	return nbt.NewCompound().
		Set("RaisedPPStages", nbt.Int(0)).
		Set("MoveName", nbt.String(name)).
		Set("MovePP", nbt.Int(30))
}

// WithSpecies sets the stored species identifier
func (b *RecordBuilder) WithSpecies(id string) *RecordBuilder {
	b.record.Set("Species", nbt.String(id))
	return b
}

// WithLevel sets the level
func (b *RecordBuilder) WithLevel(level int32) *RecordBuilder {
	b.record.Set("Level", nbt.Int(level))
	return b
}

// WithMoves replaces the move set
func (b *RecordBuilder) WithMoves(names ...string) *RecordBuilder {
	moves := nbt.NewList(nbt.KindCompound)
	for _, name := range names {
		_ = moves.Append(move(name))
	}
	b.record.Set("MoveSet", moves)
	return b
}

// WithUUID sets the creature UUID quad
func (b *RecordBuilder) WithUUID(a, c, d, e int32) *RecordBuilder {
	b.record.Set("UUID", nbt.IntList(a, c, d, e))
	return b
}

// WithTag sets any top-level tag
func (b *RecordBuilder) WithTag(key string, v nbt.Value) *RecordBuilder {
	b.record.Set(key, v)
	return b
}

// WithPersistent sets a tag inside PersistentData
func (b *RecordBuilder) WithPersistent(key string, v nbt.Value) *RecordBuilder {
	b.record.EnsureCompound("PersistentData").Set(key, v)
	return b
}

// Without removes a top-level tag
func (b *RecordBuilder) Without(key string) *RecordBuilder {
	b.record.Delete(key)
	return b
}

// Build returns the record
func (b *RecordBuilder) Build() *nbt.Compound {
	return b.record
}
