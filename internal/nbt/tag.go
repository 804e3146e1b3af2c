// Package nbt models the typed tag tree of a save file and reads and writes
// it through go-mc's binary codec.
//
// Compounds keep key insertion order and every value keeps its exact tag
// kind, so a tree that is loaded, partially edited and saved again writes
// back every untouched tag unchanged.
package nbt

import (
	"fmt"

	mcnbt "github.com/Tnze/go-mc/nbt"
)

// Kind is a tag type id as it appears on disk
type Kind byte

// Tag kinds
const (
	KindEnd       = Kind(mcnbt.TagEnd)
	KindByte      = Kind(mcnbt.TagByte)
	KindShort     = Kind(mcnbt.TagShort)
	KindInt       = Kind(mcnbt.TagInt)
	KindLong      = Kind(mcnbt.TagLong)
	KindFloat     = Kind(mcnbt.TagFloat)
	KindDouble    = Kind(mcnbt.TagDouble)
	KindByteArray = Kind(mcnbt.TagByteArray)
	KindString    = Kind(mcnbt.TagString)
	KindList      = Kind(mcnbt.TagList)
	KindCompound  = Kind(mcnbt.TagCompound)
	KindIntArray  = Kind(mcnbt.TagIntArray)
	KindLongArray = Kind(mcnbt.TagLongArray)
)

var kindNames = map[Kind]string{
	KindEnd:       "End",
	KindByte:      "Byte",
	KindShort:     "Short",
	KindInt:       "Int",
	KindLong:      "Long",
	KindFloat:     "Float",
	KindDouble:    "Double",
	KindByteArray: "ByteArray",
	KindString:    "String",
	KindList:      "List",
	KindCompound:  "Compound",
	KindIntArray:  "IntArray",
	KindLongArray: "LongArray",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", byte(k))
}

// Value is any tag payload
type Value interface {
	Kind() Kind
}

// Scalar tag types
type (
	Byte      int8
	Short     int16
	Int       int32
	Long      int64
	Float     float32
	Double    float64
	String    string
	ByteArray []byte
	IntArray  []int32
	LongArray []int64
)

func (Byte) Kind() Kind      { return KindByte }
func (Short) Kind() Kind     { return KindShort }
func (Int) Kind() Kind       { return KindInt }
func (Long) Kind() Kind      { return KindLong }
func (Float) Kind() Kind     { return KindFloat }
func (Double) Kind() Kind    { return KindDouble }
func (String) Kind() Kind    { return KindString }
func (ByteArray) Kind() Kind { return KindByteArray }
func (IntArray) Kind() Kind  { return KindIntArray }
func (LongArray) Kind() Kind { return KindLongArray }

// AsInteger widens any integral tag to int64
func AsInteger(v Value) (int64, bool) {
	switch t := v.(type) {
	case Byte:
		return int64(t), true
	case Short:
		return int64(t), true
	case Int:
		return int64(t), true
	case Long:
		return int64(t), true
	}
	return 0, false
}

// AsNumber widens any numeric tag to float64
func AsNumber(v Value) (float64, bool) {
	switch t := v.(type) {
	case Float:
		return float64(t), true
	case Double:
		return float64(t), true
	}
	if n, ok := AsInteger(v); ok {
		return float64(n), true
	}
	return 0, false
}

// Clone deep-copies v
func Clone(v Value) Value {
	switch t := v.(type) {
	case *Compound:
		return t.Clone()
	case *List:
		return t.Clone()
	case ByteArray:
		return append(ByteArray(nil), t...)
	case IntArray:
		return append(IntArray(nil), t...)
	case LongArray:
		return append(LongArray(nil), t...)
	}
	return v
}

// Equal reports whether a and b hold the same kinds and values, with
// compound keys compared in order.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch at := a.(type) {
	case *Compound:
		bt := b.(*Compound)
		if at.Len() != bt.Len() {
			return false
		}
		for i, key := range at.keys {
			if bt.keys[i] != key || !Equal(at.values[key], bt.values[key]) {
				return false
			}
		}
		return true
	case *List:
		bt := b.(*List)
		if at.elem != bt.elem || len(at.items) != len(bt.items) {
			return false
		}
		for i := range at.items {
			if !Equal(at.items[i], bt.items[i]) {
				return false
			}
		}
		return true
	case ByteArray:
		return string(at) == string(b.(ByteArray))
	case IntArray:
		bt := b.(IntArray)
		if len(at) != len(bt) {
			return false
		}
		for i := range at {
			if at[i] != bt[i] {
				return false
			}
		}
		return true
	case LongArray:
		bt := b.(LongArray)
		if len(at) != len(bt) {
			return false
		}
		for i := range at {
			if at[i] != bt[i] {
				return false
			}
		}
		return true
	}
	return a == b
}
