package schema

import (
	"fmt"

	"github.com/KirkDiggler/cobblemon-transporter/internal/entities"
	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
	"github.com/KirkDiggler/cobblemon-transporter/internal/nbt"
)

var movesField = field{
	key: "moves",
	decode: func(d *decoder, c *entities.Creature) {
		c.Moves = []string{}
		list, ok := d.list("moves", top("MoveSet"))
		if !ok {
			return
		}
		for i, item := range list.Items() {
			move, ok := item.(*nbt.Compound)
			if !ok {
				d.report.add("moves", fmt.Sprintf("entry %d is not a compound", i))
				continue
			}
			name, _ := move.GetString("MoveName")
			name = Normalize(name)
			if name == "" {
				continue
			}
			if len(c.Moves) == MaxMoves {
				d.report.add("moves", "more than 4 moves stored, ignoring "+name)
				continue
			}
			c.Moves = append(c.Moves, name)
		}
	},
	encode: func(e *encoder, c *entities.Creature) {
		if c.Moves == nil {
			return
		}

		moves := make([]nbt.Value, 0, MaxMoves)
		for i, name := range c.Moves {
			normalized := Normalize(name)
			switch {
			case normalized == "":
				e.report.warn("moves", fmt.Sprintf("blank move name at index %d", i))
			case len(moves) == MaxMoves:
				e.report.warn("moves", "more than 4 moves, ignoring "+name)
			default:
				moves = append(moves, moveEntry(normalized))
			}
		}

		// Reuse the stored list so its element kind survives the rewrite
		list, ok := e.record.List("MoveSet")
		switch {
		case !ok:
			list = nbt.NewList(nbt.KindCompound)
			e.record.Set("MoveSet", list)
		case list.Elem() != nbt.KindCompound && list.Elem() != nbt.KindEnd:
			e.report.warn("moves", "MoveSet holds "+list.Elem().String()+" tags, replacing it")
			list = nbt.NewList(nbt.KindCompound)
			e.record.Set("MoveSet", list)
		default:
			list.Clear()
		}
		for _, move := range moves {
			// kinds were checked above
			_ = list.Append(move)
		}
	},
}

func moveEntry(name string) *nbt.Compound {
	return nbt.NewCompound().
		Set("RaisedPPStages", nbt.Int(0)).
		Set("MoveName", nbt.String(name)).
		Set("MovePP", nbt.Int(DefaultMovePP))
}

var teraTypeField = field{
	key: "tera_type",
	decode: func(d *decoder, c *entities.Creature) {
		name, _ := d.str("tera_type", top("TeraType"))
		name = StripNamespace(name)
		if name == "" {
			name = DefaultTeraType
		}
		c.TeraType = entities.Ptr(name)
	},
	encode: func(e *encoder, c *entities.Creature) {
		switch {
		case c.TeraType != nil && Normalize(*c.TeraType) != "":
			e.set(top("TeraType"), nbt.String(Namespaced(*c.TeraType)))
		case c.TeraType != nil:
			e.set(top("TeraType"), nbt.String(Namespace+DefaultTeraType))
		default:
			existing, _ := e.record.GetString("TeraType")
			if StripNamespace(existing) == "" {
				e.set(top("TeraType"), nbt.String(Namespace+DefaultTeraType))
			}
		}
	},
}

// ValidUUID reports whether ids can be written as a creature UUID
func ValidUUID(ids []int64) bool {
	if len(ids) != 4 {
		return false
	}
	lo, hi := widthBounds(nbt.KindInt)
	for _, id := range ids {
		if id < lo || id > hi {
			return false
		}
	}
	return true
}

var uuidField = field{
	key: "uuid",
	decode: func(d *decoder, c *entities.Creature) {
		c.UUID = []int64{}
		v, ok := d.lookup("uuid", top("UUID"))
		if !ok {
			return
		}
		switch t := v.(type) {
		case nbt.IntArray:
			for _, id := range t {
				c.UUID = append(c.UUID, int64(id))
			}
		case *nbt.List:
			for _, item := range t.Items() {
				if id, ok := nbt.AsInteger(item); ok {
					c.UUID = append(c.UUID, id)
				}
			}
		default:
			d.report.add("uuid", "expected an Int list, got "+v.Kind().String())
		}
	},
	validate: func(c *entities.Creature, invalid, ranges *errors.ValidationBuilder) {
		if len(c.UUID) == 0 {
			return
		}
		if len(c.UUID) != 4 {
			invalid.Fieldf("uuid", "must hold 4 ints, got %d", len(c.UUID))
			return
		}
		for i, id := range c.UUID {
			validateWidth(fmt.Sprintf("uuid[%d]", i), id, nbt.KindInt, ranges)
		}
	},
	encode: func(e *encoder, c *entities.Creature) {
		if !ValidUUID(c.UUID) {
			return
		}
		quad := make([]int32, 4)
		for i, id := range c.UUID {
			quad[i] = int32(id)
		}
		if existing, ok := e.record.Get("UUID"); ok && existing.Kind() == nbt.KindIntArray {
			e.set(top("UUID"), nbt.IntArray(quad))
			return
		}
		e.set(top("UUID"), nbt.IntList(quad...))
	},
}

var marksField = field{
	key: "marks",
	decode: func(d *decoder, c *entities.Creature) {
		list, ok := d.list("marks", top("Marks"))
		if !ok {
			return
		}
		for _, item := range list.Items() {
			id, _ := item.(nbt.String)
			name, known := MarkName(string(id))
			if !known {
				d.report.add("marks", "unknown mark identifier "+string(id))
				continue
			}
			c.Marks = append(c.Marks, name)
		}
	},
	encode: func(e *encoder, c *entities.Creature) {
		if len(c.Marks) == 0 {
			return
		}
		ids := make([]string, 0, len(c.Marks))
		for _, name := range c.Marks {
			id, ok := MarkIdentifier(name)
			if !ok {
				e.report.warn("marks", "unknown mark or ribbon "+name)
				continue
			}
			ids = append(ids, id)
		}
		if len(ids) > 0 {
			e.set(top("Marks"), nbt.StringList(ids...))
		}
	},
}

var ribbonsField = field{
	key: "ribbons",
	decode: func(d *decoder, c *entities.Creature) {
		c.Ribbons = []int64{}
		list, ok := d.list("ribbons", persistent("Ribbons"))
		if !ok {
			return
		}
		for _, item := range list.Items() {
			if v, ok := nbt.AsInteger(item); ok {
				c.Ribbons = append(c.Ribbons, v)
			}
		}
	},
	validate: func(c *entities.Creature, _, ranges *errors.ValidationBuilder) {
		for i, v := range c.Ribbons {
			validateWidth(fmt.Sprintf("ribbons[%d]", i), v, nbt.KindInt, ranges)
		}
	},
	encode: func(e *encoder, c *entities.Creature) {
		if c.Ribbons == nil {
			return
		}
		values := make([]int32, len(c.Ribbons))
		for i, v := range c.Ribbons {
			values[i] = int32(v)
		}
		e.set(persistent("Ribbons"), nbt.IntList(values...))
	},
}

var relearnFlagsField = field{
	key: "relearn_flags",
	decode: func(d *decoder, c *entities.Creature) {
		c.RelearnFlags = []bool{}
		list, ok := d.list("relearn_flags", persistent("RelearnFlags"))
		if !ok {
			return
		}
		for _, item := range list.Items() {
			v, _ := nbt.AsInteger(item)
			c.RelearnFlags = append(c.RelearnFlags, v != 0)
		}
	},
	encode: func(e *encoder, c *entities.Creature) {
		if c.RelearnFlags == nil {
			return
		}
		values := make([]int8, len(c.RelearnFlags))
		for i, v := range c.RelearnFlags {
			values[i] = int8(flagTag(v))
		}
		e.set(persistent("RelearnFlags"), nbt.ByteList(values...))
	},
}

var memoryKeys = []struct {
	native string
	get    func(*entities.Memories) **int64
}{
	{"MemoryType", func(m *entities.Memories) **int64 { return &m.MemoryType }},
	{"MemoryIntensity", func(m *entities.Memories) **int64 { return &m.MemoryIntensity }},
	{"MemoryFeeling", func(m *entities.Memories) **int64 { return &m.MemoryFeeling }},
	{"MemoryVariable", func(m *entities.Memories) **int64 { return &m.MemoryVariable }},
}

var memoriesField = field{
	key: "memories",
	decode: func(d *decoder, c *entities.Creature) {
		src, _ := d.compound("memories", persistent("Memories"))
		c.Memories = &entities.Memories{}
		for _, k := range memoryKeys {
			v, _ := src.Integer(k.native)
			*k.get(c.Memories) = entities.Ptr(v)
		}
	},
	validate: func(c *entities.Creature, _, ranges *errors.ValidationBuilder) {
		if c.Memories == nil {
			return
		}
		for _, k := range memoryKeys {
			if p := *k.get(c.Memories); p != nil {
				validateWidth("memories."+k.native, *p, nbt.KindInt, ranges)
			}
		}
	},
	encode: func(e *encoder, c *entities.Creature) {
		if c.Memories == nil {
			return
		}
		dst := e.record.EnsureCompound("PersistentData").EnsureCompound("Memories")
		for _, k := range memoryKeys {
			var v int64
			if p := *k.get(c.Memories); p != nil {
				v = *p
			}
			dst.Set(k.native, nbt.Int(v))
		}
	},
}
