// Package entities holds the transport-neutral domain types
package entities

import "fmt"

// Stat keys in the order the game and the record files use them
var StatKeys = []string{"attack", "defence", "hp", "special_attack", "special_defence", "speed"}

// Creature is the NormalizedRecord: the flat JSON form of one creature.
//
// A nil field means "not present". Decoding a native record fills every
// field; a hand-edited or converter-produced record may set only some, and
// merging writes back only the fields that are set.
type Creature struct {
	Species         *string  `json:"species,omitempty"`
	Nickname        *string  `json:"nickname,omitempty"`
	Level           *int64   `json:"level,omitempty"`
	Ability         *string  `json:"ability,omitempty"`
	Moves           []string `json:"moves" jsonschema:"maxItems=4"`
	IVs             *Stats   `json:"ivs,omitempty"`
	EVs             *Stats   `json:"evs,omitempty"`
	Nature          *string  `json:"nature,omitempty"`
	OriginalTrainer *string  `json:"original_trainer,omitempty"`
	Health          *int64   `json:"health,omitempty"`
	Experience      *int64   `json:"experience,omitempty"`
	Shiny           *int64   `json:"shiny,omitempty"`
	CaughtBall      *string  `json:"caught_ball,omitempty"`
	Gender          *string  `json:"gender,omitempty"`
	Friendship      *int64   `json:"friendship,omitempty"`
	HealingTimer    *int64   `json:"healing_timer,omitempty"`
	GmaxFactor      *int64   `json:"gmax_factor,omitempty"`
	GmaxLevel       *int64   `json:"gmax_level,omitempty"`
	TeraType        *string  `json:"tera_type,omitempty"`
	FormID          *string  `json:"form_id,omitempty"`
	UUID            []int64  `json:"uuid" jsonschema:"maxItems=4"`
	ScaleModifier   *float64 `json:"scale_modifier,omitempty"`
	Marks           []string `json:"marks,omitempty"`

	MetDate            *string `json:"met_date,omitempty"`
	MetLevel           *int64  `json:"met_level,omitempty"`
	MetLocation        *string `json:"met_location,omitempty"`
	OriginGame         *string `json:"origin_game,omitempty"`
	Language           *int64  `json:"language,omitempty"`
	TID                *int64  `json:"tid"`
	PID                *int64  `json:"pid"`
	SID                *int64  `json:"sid"`
	HomeTracker        *int64  `json:"home_tracker,omitempty"`
	EncryptionConstant *int64  `json:"encryption_constant,omitempty"`
	Height             *int64  `json:"height,omitempty"`
	Weight             *int64  `json:"weight,omitempty"`
	Scale              *int64  `json:"scale,omitempty"`
	Ribbons            []int64 `json:"ribbons"`
	RelearnFlags       []bool  `json:"relearn_flags"`
	FatefulEncounter   *bool   `json:"fateful_encounter,omitempty"`

	Memories *Memories `json:"memories,omitempty"`

	EggLocation   *string `json:"egg_location,omitempty"`
	EggDate       *string `json:"egg_date,omitempty"`
	IsEgg         *bool   `json:"is_egg,omitempty"`
	PokerusStrain *int64  `json:"pokerus_strain,omitempty"`
	PokerusDays   *int64  `json:"pokerus_days,omitempty"`

	CurrentHandler            *int64  `json:"current_handler,omitempty"`
	HandlingTrainerName       *string `json:"handling_trainer_name,omitempty"`
	HandlingTrainerGender     *int64  `json:"handling_trainer_gender,omitempty"`
	HandlingTrainerFriendship *int64  `json:"handling_trainer_friendship,omitempty"`
	OriginalTrainerGender     *int64  `json:"original_trainer_gender,omitempty"`

	AbilityNumber   *int64  `json:"ability_number,omitempty"`
	StatNature      *string `json:"stat_nature,omitempty"`
	Characteristic  *int64  `json:"characteristic,omitempty"`
	TSV             *int64  `json:"tsv,omitempty"`
	PSV             *int64  `json:"psv,omitempty"`
	HPType          *int64  `json:"hp_type,omitempty"`
	HPPower         *int64  `json:"hp_power,omitempty"`
	IVTotal         *int64  `json:"iv_total,omitempty"`
	PotentialRating *int64  `json:"potential_rating,omitempty"`
	RelearnMove1    *int64  `json:"relearn_move1,omitempty"`
	RelearnMove2    *int64  `json:"relearn_move2,omitempty"`
	RelearnMove3    *int64  `json:"relearn_move3,omitempty"`
	RelearnMove4    *int64  `json:"relearn_move4,omitempty"`

	BoxNumber  *int64 `json:"box_number,omitempty"`
	SlotNumber *int64 `json:"slot_number,omitempty"`
}

// Stats holds the six per-stat values of IVs or EVs
type Stats struct {
	Attack         *int64 `json:"attack,omitempty"`
	Defence        *int64 `json:"defence,omitempty"`
	HP             *int64 `json:"hp,omitempty"`
	SpecialAttack  *int64 `json:"special_attack,omitempty"`
	SpecialDefence *int64 `json:"special_defence,omitempty"`
	Speed          *int64 `json:"speed,omitempty"`
}

// Field returns a pointer to the slot holding the named stat, or nil for
// an unknown key.
func (s *Stats) Field(key string) **int64 {
	switch key {
	case "attack":
		return &s.Attack
	case "defence":
		return &s.Defence
	case "hp":
		return &s.HP
	case "special_attack":
		return &s.SpecialAttack
	case "special_defence":
		return &s.SpecialDefence
	case "speed":
		return &s.Speed
	}
	return nil
}

// Memories is the handler memory block
type Memories struct {
	MemoryType      *int64 `json:"memory_type,omitempty"`
	MemoryIntensity *int64 `json:"memory_intensity,omitempty"`
	MemoryFeeling   *int64 `json:"memory_feeling,omitempty"`
	MemoryVariable  *int64 `json:"memory_variable,omitempty"`
}

// Address is a 1-indexed (box, slot) position in the record grid
type Address struct {
	Box  int `json:"box_number"`
	Slot int `json:"slot_number"`
}

func (a Address) String() string {
	return fmt.Sprintf("Box %d, Slot %d", a.Box, a.Slot)
}

// Less orders addresses box first
func (a Address) Less(b Address) bool {
	if a.Box != b.Box {
		return a.Box < b.Box
	}
	return a.Slot < b.Slot
}

// Address returns the claimed address, or nil when either half is missing
func (c *Creature) Address() *Address {
	if c.BoxNumber == nil || c.SlotNumber == nil {
		return nil
	}
	return &Address{Box: int(*c.BoxNumber), Slot: int(*c.SlotNumber)}
}

// SetAddress claims addr, or clears the claim when addr is nil
func (c *Creature) SetAddress(addr *Address) {
	if addr == nil {
		c.BoxNumber, c.SlotNumber = nil, nil
		return
	}
	c.BoxNumber = Ptr(int64(addr.Box))
	c.SlotNumber = Ptr(int64(addr.Slot))
}

// SpeciesName returns the species or an empty string
func (c *Creature) SpeciesName() string {
	if c.Species == nil {
		return ""
	}
	return *c.Species
}

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}
