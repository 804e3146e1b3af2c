package nbt

import (
	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
)

// List is a homogeneous sequence of tags
type List struct {
	elem  Kind
	items []Value
}

// NewList creates an empty list of the given element kind
func NewList(elem Kind) *List {
	return &List{elem: elem}
}

// Kind implements Value
func (l *List) Kind() Kind { return KindList }

// Elem returns the element kind. Empty lists read from disk often carry
// KindEnd.
func (l *List) Elem() Kind { return l.elem }

// Len returns the number of items
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At returns the item at index i
func (l *List) At(i int) Value {
	return l.items[i]
}

// Items returns a copy of the item slice
func (l *List) Items() []Value {
	if l == nil {
		return nil
	}
	return append([]Value(nil), l.items...)
}

// Append adds v. An empty End-typed list adopts the kind of its first item;
// otherwise a kind mismatch is rejected.
func (l *List) Append(v Value) error {
	if v == nil || v.Kind() == KindEnd {
		return errors.InvalidArgument("cannot append an End tag to a list")
	}
	if l.elem == KindEnd && len(l.items) == 0 {
		l.elem = v.Kind()
	}
	if v.Kind() != l.elem {
		return errors.InvalidArgumentf("cannot append %s to a list of %s", v.Kind(), l.elem)
	}
	l.items = append(l.items, v)
	return nil
}

// Clear removes every item and keeps the element kind
func (l *List) Clear() {
	l.items = nil
}

// Clone deep-copies the list
func (l *List) Clone() *List {
	if l == nil {
		return nil
	}
	out := &List{elem: l.elem, items: make([]Value, len(l.items))}
	for i, v := range l.items {
		out.items[i] = Clone(v)
	}
	return out
}

// Compounds returns the items that are compounds, in order
func (l *List) Compounds() []*Compound {
	if l == nil {
		return nil
	}
	var out []*Compound
	for _, v := range l.items {
		if c, ok := v.(*Compound); ok {
			out = append(out, c)
		}
	}
	return out
}

// IntList builds a list of Int tags
func IntList(values ...int32) *List {
	l := NewList(KindInt)
	for _, v := range values {
		l.items = append(l.items, Int(v))
	}
	return l
}

// StringList builds a list of String tags
func StringList(values ...string) *List {
	l := NewList(KindString)
	for _, v := range values {
		l.items = append(l.items, String(v))
	}
	return l
}

// ByteList builds a list of Byte tags
func ByteList(values ...int8) *List {
	l := NewList(KindByte)
	for _, v := range values {
		l.items = append(l.items, Byte(v))
	}
	return l
}
