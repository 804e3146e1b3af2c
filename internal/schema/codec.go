// Package schema is the single field table that maps a native creature
// compound to the NormalizedRecord and back.
//
// Decode reads every field independently: a missing or wrong-typed field
// falls back to its default and is listed in the report. Only Species and
// Level are identity-critical. Encode writes just the fields present on the
// record, after every value has been checked against its native width.
package schema

import (
	"log/slog"

	"github.com/KirkDiggler/cobblemon-transporter/internal/entities"
	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
	"github.com/KirkDiggler/cobblemon-transporter/internal/nbt"
	"github.com/KirkDiggler/cobblemon-transporter/internal/pkg/clock"
)

// Issue is one field that did not decode or encode cleanly
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DecodeReport lists fields that fell back to their default
type DecodeReport struct {
	Issues []Issue
}

func (r *DecodeReport) add(field, message string) {
	r.Issues = append(r.Issues, Issue{Field: field, Message: message})
}

// EncodeReport lists values that were skipped while writing
type EncodeReport struct {
	Warnings []Issue
}

func (r *EncodeReport) warn(field, message string) {
	slog.Warn("skipping value", "field", field, "reason", message)
	r.Warnings = append(r.Warnings, Issue{Field: field, Message: message})
}

// Config configures a Codec
type Config struct {
	Clock   clock.Clock
	Hyphens HyphenTable
}

// Validate fills defaults
func (c *Config) Validate() error {
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	if c.Hyphens == nil {
		c.Hyphens = HyphenTable{}
	}
	return nil
}

// Codec converts between native records and NormalizedRecords
type Codec struct {
	clock   clock.Clock
	hyphens HyphenTable
}

// New creates a codec
func New(cfg *Config) (*Codec, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Codec{clock: cfg.Clock, hyphens: cfg.Hyphens}, nil
}

// Keys returns the JSON keys the codec handles, in table order
func Keys() []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.key
	}
	return out
}

// Decode reads a native record. It never mutates record.
func (c *Codec) Decode(record *nbt.Compound) (*entities.Creature, *DecodeReport, error) {
	if record == nil {
		return nil, nil, errors.InvalidArgument("record is required")
	}

	d := &decoder{codec: c, record: record, report: &DecodeReport{}}
	if err := d.identity(); err != nil {
		return nil, d.report, err
	}

	out := &entities.Creature{
		Species: entities.Ptr(d.species),
		Level:   entities.Ptr(d.level),
	}
	for _, f := range fields {
		if f.decode != nil {
			f.decode(d, out)
		}
	}
	return out, d.report, nil
}

// Encode writes the fields present on creature into record. Nothing is
// written when any value fails validation.
func (c *Codec) Encode(creature *entities.Creature, record *nbt.Compound) (*EncodeReport, error) {
	if creature == nil || record == nil {
		return nil, errors.InvalidArgument("creature and record are required")
	}

	invalid := errors.NewValidationBuilder()
	ranges := errors.NewValidationBuilder()
	for _, f := range fields {
		if f.validate != nil {
			f.validate(creature, invalid, ranges)
		}
	}
	if err := invalid.Build(); err != nil {
		return nil, err
	}
	if err := ranges.BuildWithCode(errors.CodeOutOfRange); err != nil {
		return nil, err
	}

	e := &encoder{record: record, report: &EncodeReport{}}
	for _, f := range fields {
		if f.encode != nil {
			f.encode(e, creature)
		}
	}
	return e.report, nil
}

// OriginalTrainerUUID returns the raw trainer id stored on the record
func OriginalTrainerUUID(record *nbt.Compound) (string, bool) {
	return record.GetString("PokemonOriginalTrainer")
}

// HasIdentity reports whether record looks like a creature: a compound
// holding a Species tag.
func HasIdentity(record *nbt.Compound) bool {
	return record.Has("Species")
}

type decoder struct {
	codec  *Codec
	record *nbt.Compound
	report *DecodeReport

	species string
	level   int64
}

func (d *decoder) identity() error {
	v, ok := d.record.Get("Species")
	if !ok {
		return errors.FailedPrecondition("record has no species").WithMeta("field", "species")
	}
	s, ok := v.(nbt.String)
	if !ok {
		return errors.FailedPreconditionf("species is a %s tag, expected String", v.Kind()).
			WithMeta("field", "species")
	}
	d.species = d.codec.hyphens.Display(StripNamespace(string(s)))

	v, ok = d.record.Get("Level")
	if !ok {
		return errors.FailedPrecondition("record has no level").WithMeta("field", "level")
	}
	level, ok := nbt.AsInteger(v)
	if !ok {
		return errors.FailedPreconditionf("level is a %s tag, expected Int", v.Kind()).
			WithMeta("field", "level")
	}
	d.level = level
	return nil
}

// lookup walks path from the record root
func (d *decoder) lookup(key string, path []string) (nbt.Value, bool) {
	node := d.record
	for _, step := range path[:len(path)-1] {
		v, ok := node.Get(step)
		if !ok {
			return nil, false
		}
		child, ok := v.(*nbt.Compound)
		if !ok {
			d.report.add(key, step+" is not a compound")
			return nil, false
		}
		node = child
	}
	return node.Get(path[len(path)-1])
}

func (d *decoder) integer(key string, path []string) (int64, bool) {
	v, ok := d.lookup(key, path)
	if !ok {
		return 0, false
	}
	n, ok := nbt.AsInteger(v)
	if !ok {
		d.report.add(key, "expected an integer tag, got "+v.Kind().String())
	}
	return n, ok
}

func (d *decoder) number(key string, path []string) (float64, bool) {
	v, ok := d.lookup(key, path)
	if !ok {
		return 0, false
	}
	n, ok := nbt.AsNumber(v)
	if !ok {
		d.report.add(key, "expected a numeric tag, got "+v.Kind().String())
	}
	return n, ok
}

func (d *decoder) str(key string, path []string) (string, bool) {
	v, ok := d.lookup(key, path)
	if !ok {
		return "", false
	}
	s, ok := v.(nbt.String)
	if !ok {
		d.report.add(key, "expected a String tag, got "+v.Kind().String())
	}
	return string(s), ok
}

func (d *decoder) list(key string, path []string) (*nbt.List, bool) {
	v, ok := d.lookup(key, path)
	if !ok {
		return nil, false
	}
	l, ok := v.(*nbt.List)
	if !ok {
		d.report.add(key, "expected a List tag, got "+v.Kind().String())
	}
	return l, ok
}

func (d *decoder) compound(key string, path []string) (*nbt.Compound, bool) {
	v, ok := d.lookup(key, path)
	if !ok {
		return nil, false
	}
	c, ok := v.(*nbt.Compound)
	if !ok {
		d.report.add(key, "expected a Compound tag, got "+v.Kind().String())
	}
	return c, ok
}

type encoder struct {
	record *nbt.Compound
	report *EncodeReport
}

// parent returns the compound that holds the last path element, creating
// intermediate compounds as needed.
func (e *encoder) parent(path []string) *nbt.Compound {
	node := e.record
	for _, step := range path[:len(path)-1] {
		node = node.EnsureCompound(step)
	}
	return node
}

func (e *encoder) set(path []string, v nbt.Value) {
	e.parent(path).Set(path[len(path)-1], v)
}

func (e *encoder) existing(path []string) (nbt.Value, bool) {
	node := e.record
	for _, step := range path[:len(path)-1] {
		child, ok := node.Compound(step)
		if !ok {
			return nil, false
		}
		node = child
	}
	return node.Get(path[len(path)-1])
}
