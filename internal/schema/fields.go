package schema

import (
	"math"
	"strconv"
	"strings"

	"github.com/KirkDiggler/cobblemon-transporter/internal/entities"
	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
	"github.com/KirkDiggler/cobblemon-transporter/internal/nbt"
	"github.com/KirkDiggler/cobblemon-transporter/internal/pkg/clock"
)

// Native defaults
const (
	MaxMoves              = 4
	DefaultMetLocation    = "a lovely place"
	DefaultOriginGame     = "Cobblemon"
	DefaultLanguage       = 2
	DefaultEggLocation    = "0"
	DefaultFormID         = "normal"
	DefaultTeraType       = "normal"
	DefaultUnknown        = "Unknown"
	DefaultAbilityNumber  = 1
	DefaultCharacteristic = -1
	DefaultMovePP         = 5
	DefaultScaleModifier  = 1.0
)

type field struct {
	key      string
	decode   func(d *decoder, c *entities.Creature)
	validate func(c *entities.Creature, invalid, ranges *errors.ValidationBuilder)
	encode   func(e *encoder, c *entities.Creature)
}

func top(key string) []string { return []string{key} }

func persistent(key string) []string { return []string{"PersistentData", key} }

func constant(v int64) func(*entities.Creature) int64 {
	return func(*entities.Creature) int64 { return v }
}

func constantString(v string) func(*decoder, *entities.Creature) string {
	return func(*decoder, *entities.Creature) string { return v }
}

func today(d *decoder, _ *entities.Creature) string {
	return clock.Today(d.codec.clock)
}

// widthBounds returns the representable range of an integral kind
func widthBounds(kind nbt.Kind) (int64, int64) {
	switch kind {
	case nbt.KindByte:
		return math.MinInt8, math.MaxInt8
	case nbt.KindShort:
		return math.MinInt16, math.MaxInt16
	case nbt.KindInt:
		return math.MinInt32, math.MaxInt32
	}
	return math.MinInt64, math.MaxInt64
}

func integerTag(kind nbt.Kind, v int64) nbt.Value {
	switch kind {
	case nbt.KindByte:
		return nbt.Byte(v)
	case nbt.KindShort:
		return nbt.Short(v)
	case nbt.KindInt:
		return nbt.Int(v)
	}
	return nbt.Long(v)
}

func validateWidth(key string, v int64, kind nbt.Kind, ranges *errors.ValidationBuilder) {
	lo, hi := widthBounds(kind)
	errors.ValidateRange(key, v, lo, hi, ranges)
}

// intField is an integral tag with a default on read
func intField(key string, path []string, kind nbt.Kind, get func(*entities.Creature) **int64, def func(*entities.Creature) int64) field {
	f := optionalIntField(key, path, kind, get)
	f.decode = func(d *decoder, c *entities.Creature) {
		if v, ok := d.integer(key, path); ok {
			*get(c) = entities.Ptr(v)
			return
		}
		*get(c) = entities.Ptr(def(c))
	}
	return f
}

// optionalIntField stays nil on read when the tag is absent
func optionalIntField(key string, path []string, kind nbt.Kind, get func(*entities.Creature) **int64) field {
	return field{
		key: key,
		decode: func(d *decoder, c *entities.Creature) {
			if v, ok := d.integer(key, path); ok {
				*get(c) = entities.Ptr(v)
			}
		},
		validate: func(c *entities.Creature, _, ranges *errors.ValidationBuilder) {
			if p := *get(c); p != nil {
				validateWidth(key, *p, kind, ranges)
			}
		},
		encode: func(e *encoder, c *entities.Creature) {
			if p := *get(c); p != nil {
				e.set(path, integerTag(kind, *p))
			}
		},
	}
}

func stringField(key string, path []string, get func(*entities.Creature) **string, def func(*decoder, *entities.Creature) string) field {
	return field{
		key: key,
		decode: func(d *decoder, c *entities.Creature) {
			if v, ok := d.str(key, path); ok {
				*get(c) = entities.Ptr(v)
				return
			}
			*get(c) = entities.Ptr(def(d, c))
		},
		encode: func(e *encoder, c *entities.Creature) {
			if p := *get(c); p != nil {
				e.set(path, nbt.String(*p))
			}
		},
	}
}

// flagField is a Byte tag read as a boolean
func flagField(key string, path []string, get func(*entities.Creature) **bool) field {
	return field{
		key: key,
		decode: func(d *decoder, c *entities.Creature) {
			v, _ := d.integer(key, path)
			*get(c) = entities.Ptr(v != 0)
		},
		encode: func(e *encoder, c *entities.Creature) {
			if p := *get(c); p != nil {
				e.set(path, flagTag(*p))
			}
		},
	}
}

func flagTag(v bool) nbt.Byte {
	if v {
		return 1
	}
	return 0
}

// statsField maps IVs or EVs. Missing stats read as 0.
func statsField(key, native string, get func(*entities.Creature) **entities.Stats) field {
	path := top(native)
	return field{
		key: key,
		decode: func(d *decoder, c *entities.Creature) {
			stats := &entities.Stats{}
			src, _ := d.compound(key, path)
			for _, stat := range entities.StatKeys {
				v, ok := src.Integer(Namespace + stat)
				if !ok && src.Has(Namespace+stat) {
					d.report.add(key+"."+stat, "expected an integer tag")
				}
				*stats.Field(stat) = entities.Ptr(v)
			}
			*get(c) = stats
		},
		validate: func(c *entities.Creature, _, ranges *errors.ValidationBuilder) {
			stats := *get(c)
			if stats == nil {
				return
			}
			for _, stat := range entities.StatKeys {
				if p := *stats.Field(stat); p != nil {
					validateWidth(key+"."+stat, *p, nbt.KindInt, ranges)
				}
			}
		},
		encode: func(e *encoder, c *entities.Creature) {
			stats := *get(c)
			if stats == nil {
				return
			}
			dst := e.record.EnsureCompound(native)
			for _, stat := range entities.StatKeys {
				if p := *stats.Field(stat); p != nil {
					dst.Set(Namespace+stat, nbt.Int(*p))
				}
			}
		},
	}
}

// float32Value widens v to the shortest float64 that prints the same, so
// 1.1 written as a Float tag reads back as 1.1.
func float32Value(v float64) float64 {
	out, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', -1, 32), 64)
	if err != nil {
		return v
	}
	return out
}

var fields = []field{
	{
		key: "species",
		validate: func(c *entities.Creature, invalid, _ *errors.ValidationBuilder) {
			if c.Species != nil && Normalize(*c.Species) == "" {
				invalid.Field("species", "cannot be blank")
			}
		},
		encode: func(e *encoder, c *entities.Creature) {
			if c.Species != nil {
				e.set(top("Species"), nbt.String(Namespaced(*c.Species)))
			}
		},
	},
	{
		key: "level",
		validate: func(c *entities.Creature, _, ranges *errors.ValidationBuilder) {
			if c.Level != nil {
				validateWidth("level", *c.Level, nbt.KindInt, ranges)
			}
		},
		encode: func(e *encoder, c *entities.Creature) {
			if c.Level != nil {
				e.set(top("Level"), nbt.Int(*c.Level))
			}
		},
	},
	stringField("nickname", top("Nickname"),
		func(c *entities.Creature) **string { return &c.Nickname },
		func(_ *decoder, c *entities.Creature) string { return Capitalize(c.SpeciesName()) }),
	{
		key: "ability",
		decode: func(d *decoder, c *entities.Creature) {
			name, _ := d.str("ability", []string{"Ability", "AbilityName"})
			c.Ability = entities.Ptr(d.codec.hyphens.Display(StripNamespace(name)))
		},
		encode: func(e *encoder, c *entities.Creature) {
			if c.Ability == nil {
				return
			}
			name := Normalize(*c.Ability)
			if name == "" {
				e.report.warn("ability", "blank ability name")
				return
			}
			e.set([]string{"Ability", "AbilityName"}, nbt.String(name))
		},
	},
	movesField,
	statsField("ivs", "IVs", func(c *entities.Creature) **entities.Stats { return &c.IVs }),
	statsField("evs", "EVs", func(c *entities.Creature) **entities.Stats { return &c.EVs }),
	{
		key: "nature",
		decode: func(d *decoder, c *entities.Creature) {
			name, _ := d.str("nature", top("Nature"))
			c.Nature = entities.Ptr(Capitalize(StripNamespace(name)))
		},
		encode: func(e *encoder, c *entities.Creature) {
			if c.Nature == nil {
				return
			}
			if Normalize(*c.Nature) == "" {
				e.report.warn("nature", "blank nature")
				return
			}
			e.set(top("Nature"), nbt.String(Namespaced(*c.Nature)))
		},
	},
	intField("health", top("Health"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.Health }, constant(0)),
	intField("experience", top("Experience"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.Experience }, constant(0)),
	intField("shiny", top("Shiny"), nbt.KindByte,
		func(c *entities.Creature) **int64 { return &c.Shiny }, constant(0)),
	{
		key: "caught_ball",
		decode: func(d *decoder, c *entities.Creature) {
			if v, ok := d.str("caught_ball", top("CaughtBall")); ok {
				c.CaughtBall = entities.Ptr(v)
				return
			}
			c.CaughtBall = entities.Ptr(DefaultUnknown)
		},
		encode: func(e *encoder, c *entities.Creature) {
			if c.CaughtBall != nil {
				e.set(top("CaughtBall"), nbt.String(strings.ToLower(*c.CaughtBall)))
			}
		},
	},
	stringField("gender", top("Gender"),
		func(c *entities.Creature) **string { return &c.Gender }, constantString(DefaultUnknown)),
	intField("friendship", top("Friendship"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.Friendship }, constant(0)),
	intField("healing_timer", top("HealingTimer"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.HealingTimer }, constant(0)),
	intField("gmax_factor", top("GmaxFactor"), nbt.KindByte,
		func(c *entities.Creature) **int64 { return &c.GmaxFactor }, constant(0)),
	intField("gmax_level", top("DmaxLevel"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.GmaxLevel }, constant(0)),
	teraTypeField,
	stringField("form_id", top("FormId"),
		func(c *entities.Creature) **string { return &c.FormID }, constantString(DefaultFormID)),
	uuidField,
	{
		key: "scale_modifier",
		decode: func(d *decoder, c *entities.Creature) {
			v, ok := d.number("scale_modifier", top("ScaleModifier"))
			if !ok {
				v = DefaultScaleModifier
			}
			c.ScaleModifier = entities.Ptr(float32Value(v))
		},
		validate: func(c *entities.Creature, _, ranges *errors.ValidationBuilder) {
			if c.ScaleModifier == nil {
				return
			}
			v := *c.ScaleModifier
			if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > math.MaxFloat32 {
				ranges.Fieldf("scale_modifier", "%g does not fit a Float tag", v)
			}
		},
		encode: func(e *encoder, c *entities.Creature) {
			if c.ScaleModifier != nil {
				e.set(top("ScaleModifier"), nbt.Float(*c.ScaleModifier))
			}
		},
	},
	marksField,

	stringField("met_date", persistent("MetDate"),
		func(c *entities.Creature) **string { return &c.MetDate }, today),
	intField("met_level", persistent("MetLevel"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.MetLevel },
		func(c *entities.Creature) int64 { return *c.Level }),
	stringField("met_location", persistent("MetLocation"),
		func(c *entities.Creature) **string { return &c.MetLocation }, constantString(DefaultMetLocation)),
	stringField("origin_game", persistent("OriginGame"),
		func(c *entities.Creature) **string { return &c.OriginGame }, constantString(DefaultOriginGame)),
	{
		key: "original_trainer",
		decode: func(d *decoder, c *entities.Creature) {
			if v, ok := d.str("original_trainer", persistent("OriginalTrainer")); ok {
				c.OriginalTrainer = entities.Ptr(v)
			}
		},
		encode: func(e *encoder, c *entities.Creature) {
			if c.OriginalTrainer != nil {
				e.set(persistent("OriginalTrainer"), nbt.String(*c.OriginalTrainer))
			}
		},
	},
	intField("language", persistent("Language"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.Language }, constant(DefaultLanguage)),
	optionalIntField("tid", persistent("TID"), nbt.KindLong,
		func(c *entities.Creature) **int64 { return &c.TID }),
	optionalIntField("pid", persistent("PID"), nbt.KindLong,
		func(c *entities.Creature) **int64 { return &c.PID }),
	optionalIntField("sid", persistent("SID"), nbt.KindLong,
		func(c *entities.Creature) **int64 { return &c.SID }),
	intField("home_tracker", persistent("HomeTracker"), nbt.KindLong,
		func(c *entities.Creature) **int64 { return &c.HomeTracker }, constant(0)),
	intField("encryption_constant", persistent("EncryptionConstant"), nbt.KindLong,
		func(c *entities.Creature) **int64 { return &c.EncryptionConstant }, constant(0)),
	intField("height", persistent("Height"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.Height }, constant(0)),
	intField("weight", persistent("Weight"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.Weight }, constant(0)),
	intField("scale", persistent("Scale"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.Scale }, constant(0)),
	ribbonsField,
	relearnFlagsField,
	flagField("fateful_encounter", persistent("FatefulEncounter"),
		func(c *entities.Creature) **bool { return &c.FatefulEncounter }),
	memoriesField,
	stringField("egg_location", persistent("EggLocation"),
		func(c *entities.Creature) **string { return &c.EggLocation }, constantString(DefaultEggLocation)),
	stringField("egg_date", persistent("EggDate"),
		func(c *entities.Creature) **string { return &c.EggDate }, constantString("")),
	flagField("is_egg", persistent("IsEgg"),
		func(c *entities.Creature) **bool { return &c.IsEgg }),
	intField("pokerus_strain", persistent("PokerusStrain"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.PokerusStrain }, constant(0)),
	intField("pokerus_days", persistent("PokerusDays"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.PokerusDays }, constant(0)),
	intField("current_handler", persistent("CurrentHandler"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.CurrentHandler }, constant(0)),
	stringField("handling_trainer_name", persistent("HandlingTrainerName"),
		func(c *entities.Creature) **string { return &c.HandlingTrainerName }, constantString("")),
	intField("handling_trainer_gender", persistent("HandlingTrainerGender"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.HandlingTrainerGender }, constant(0)),
	intField("handling_trainer_friendship", persistent("HandlingTrainerFriendship"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.HandlingTrainerFriendship }, constant(0)),
	intField("original_trainer_gender", persistent("OriginalTrainerGender"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.OriginalTrainerGender }, constant(0)),
	intField("ability_number", persistent("AbilityNumber"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.AbilityNumber }, constant(DefaultAbilityNumber)),
	{
		key: "stat_nature",
		decode: func(d *decoder, c *entities.Creature) {
			v, _ := d.str("stat_nature", persistent("StatNature"))
			c.StatNature = entities.Ptr(v)
		},
		encode: func(e *encoder, c *entities.Creature) {
			if c.StatNature != nil && *c.StatNature != "" {
				e.set(persistent("StatNature"), nbt.String(*c.StatNature))
			}
		},
	},
	intField("characteristic", persistent("Characteristic"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.Characteristic }, constant(DefaultCharacteristic)),
	intField("tsv", persistent("TSV"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.TSV }, constant(0)),
	intField("psv", persistent("PSV"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.PSV }, constant(0)),
	intField("hp_type", persistent("HPType"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.HPType }, constant(0)),
	intField("hp_power", persistent("HPPower"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.HPPower }, constant(0)),
	intField("iv_total", persistent("IVTotal"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.IVTotal }, constant(0)),
	intField("potential_rating", persistent("PotentialRating"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.PotentialRating }, constant(0)),
	intField("relearn_move1", persistent("RelearnMove1"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.RelearnMove1 }, constant(0)),
	intField("relearn_move2", persistent("RelearnMove2"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.RelearnMove2 }, constant(0)),
	intField("relearn_move3", persistent("RelearnMove3"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.RelearnMove3 }, constant(0)),
	intField("relearn_move4", persistent("RelearnMove4"), nbt.KindInt,
		func(c *entities.Creature) **int64 { return &c.RelearnMove4 }, constant(0)),
}
