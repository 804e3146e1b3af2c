package nbt

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	mcnbt "github.com/Tnze/go-mc/nbt"

	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
)

// maxDepth matches the nesting limit the game enforces
const maxDepth = 512

// Decode reads one named root compound from r.
// go-mc frames the root tag and hands back its raw payload, which is then
// parsed into an ordered, kind-preserving tree.
func Decode(r io.Reader) (string, *Compound, error) {
	var raw mcnbt.RawMessage
	name, err := mcnbt.NewDecoder(r).Decode(&raw)
	if err != nil {
		return "", nil, errors.WrapWithCode(err, errors.CodeDataLoss, "malformed NBT data")
	}
	if Kind(raw.Type) != KindCompound {
		return "", nil, errors.DataLossf("root tag is %s, want Compound", Kind(raw.Type))
	}

	p := &parser{data: raw.Data}
	v, err := p.payload(KindCompound, 0)
	if err != nil {
		return "", nil, err
	}
	if p.pos != len(p.data) {
		return "", nil, errors.DataLossf("%d trailing bytes after root compound", len(p.data)-p.pos)
	}

	return name, v.(*Compound), nil
}

// Encode writes root as a named root compound to w
func Encode(w io.Writer, name string, root *Compound) error {
	if root == nil {
		return errors.InvalidArgument("root compound is required")
	}
	if err := mcnbt.NewEncoder(w).Encode(root, name); err != nil {
		return errors.Wrap(err, "failed to encode NBT")
	}
	return nil
}

// TagType implements go-mc's nbt.Marshaler
func (c *Compound) TagType() byte { return mcnbt.TagCompound }

// MarshalNBT implements go-mc's nbt.Marshaler by writing the payload
func (c *Compound) MarshalNBT(w io.Writer) error {
	var buf bytes.Buffer
	if err := writePayload(&buf, c, 0); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

type parser struct {
	data []byte
	pos  int
}

func (p *parser) take(n int) ([]byte, error) {
	if n < 0 || p.pos+n > len(p.data) {
		return nil, errors.DataLossf("unexpected end of NBT data at offset %d", p.pos)
	}
	b := p.data[p.pos : p.pos+n]
	p.pos += n
	return b, nil
}

func (p *parser) u8() (byte, error) {
	b, err := p.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (p *parser) u16() (uint16, error) {
	b, err := p.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (p *parser) u32() (uint32, error) {
	b, err := p.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (p *parser) u64() (uint64, error) {
	b, err := p.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (p *parser) length() (int, error) {
	n, err := p.u32()
	if err != nil {
		return 0, err
	}
	if int32(n) < 0 {
		return 0, errors.DataLossf("negative length %d at offset %d", int32(n), p.pos-4)
	}
	return int(n), nil
}

func (p *parser) str() (string, error) {
	n, err := p.u16()
	if err != nil {
		return "", err
	}
	b, err := p.take(int(n))
	if err != nil {
		return "", err
	}
	return decodeMUTF8(b), nil
}

func (p *parser) payload(kind Kind, depth int) (Value, error) {
	if depth > maxDepth {
		return nil, errors.DataLossf("NBT nesting deeper than %d", maxDepth)
	}

	switch kind {
	case KindByte:
		b, err := p.u8()
		return Byte(int8(b)), err
	case KindShort:
		v, err := p.u16()
		return Short(int16(v)), err
	case KindInt:
		v, err := p.u32()
		return Int(int32(v)), err
	case KindLong:
		v, err := p.u64()
		return Long(int64(v)), err
	case KindFloat:
		v, err := p.u32()
		return Float(math.Float32frombits(v)), err
	case KindDouble:
		v, err := p.u64()
		return Double(math.Float64frombits(v)), err
	case KindString:
		s, err := p.str()
		return String(s), err
	case KindByteArray:
		n, err := p.length()
		if err != nil {
			return nil, err
		}
		b, err := p.take(n)
		if err != nil {
			return nil, err
		}
		return append(ByteArray(nil), b...), nil
	case KindIntArray:
		n, err := p.length()
		if err != nil {
			return nil, err
		}
		out := make(IntArray, 0, min(n, len(p.data)/4))
		for i := 0; i < n; i++ {
			v, err := p.u32()
			if err != nil {
				return nil, err
			}
			out = append(out, int32(v))
		}
		return out, nil
	case KindLongArray:
		n, err := p.length()
		if err != nil {
			return nil, err
		}
		out := make(LongArray, 0, min(n, len(p.data)/8))
		for i := 0; i < n; i++ {
			v, err := p.u64()
			if err != nil {
				return nil, err
			}
			out = append(out, int64(v))
		}
		return out, nil
	case KindList:
		return p.list(depth)
	case KindCompound:
		return p.compound(depth)
	}

	return nil, errors.DataLossf("unknown tag kind %d at offset %d", byte(kind), p.pos)
}

func (p *parser) list(depth int) (*List, error) {
	elem, err := p.u8()
	if err != nil {
		return nil, err
	}
	n, err := p.length()
	if err != nil {
		return nil, err
	}
	l := NewList(Kind(elem))
	if n > 0 && l.elem == KindEnd {
		return nil, errors.DataLossf("non-empty list of End at offset %d", p.pos)
	}
	for i := 0; i < n; i++ {
		v, err := p.payload(l.elem, depth+1)
		if err != nil {
			return nil, err
		}
		l.items = append(l.items, v)
	}
	return l, nil
}

func (p *parser) compound(depth int) (*Compound, error) {
	c := NewCompound()
	for {
		kind, err := p.u8()
		if err != nil {
			return nil, err
		}
		if Kind(kind) == KindEnd {
			return c, nil
		}
		name, err := p.str()
		if err != nil {
			return nil, err
		}
		v, err := p.payload(Kind(kind), depth+1)
		if err != nil {
			return nil, err
		}
		c.Set(name, v)
	}
}

func writeString(buf *bytes.Buffer, s string) error {
	b := encodeMUTF8(s)
	if len(b) > math.MaxUint16 {
		return errors.OutOfRangef("string of %d bytes does not fit an NBT string", len(b))
	}
	buf.Write(binary.BigEndian.AppendUint16(nil, uint16(len(b))))
	buf.Write(b)
	return nil
}

func writeLength(buf *bytes.Buffer, n int) error {
	if n > math.MaxInt32 {
		return errors.OutOfRangef("length %d does not fit an NBT array", n)
	}
	buf.Write(binary.BigEndian.AppendUint32(nil, uint32(n)))
	return nil
}

func writePayload(buf *bytes.Buffer, v Value, depth int) error {
	if depth > maxDepth {
		return errors.OutOfRangef("NBT nesting deeper than %d", maxDepth)
	}

	switch t := v.(type) {
	case Byte:
		buf.WriteByte(byte(t))
	case Short:
		buf.Write(binary.BigEndian.AppendUint16(nil, uint16(t)))
	case Int:
		buf.Write(binary.BigEndian.AppendUint32(nil, uint32(t)))
	case Long:
		buf.Write(binary.BigEndian.AppendUint64(nil, uint64(t)))
	case Float:
		buf.Write(binary.BigEndian.AppendUint32(nil, math.Float32bits(float32(t))))
	case Double:
		buf.Write(binary.BigEndian.AppendUint64(nil, math.Float64bits(float64(t))))
	case String:
		return writeString(buf, string(t))
	case ByteArray:
		if err := writeLength(buf, len(t)); err != nil {
			return err
		}
		buf.Write(t)
	case IntArray:
		if err := writeLength(buf, len(t)); err != nil {
			return err
		}
		for _, x := range t {
			buf.Write(binary.BigEndian.AppendUint32(nil, uint32(x)))
		}
	case LongArray:
		if err := writeLength(buf, len(t)); err != nil {
			return err
		}
		for _, x := range t {
			buf.Write(binary.BigEndian.AppendUint64(nil, uint64(x)))
		}
	case *List:
		buf.WriteByte(byte(t.elem))
		if err := writeLength(buf, len(t.items)); err != nil {
			return err
		}
		for _, item := range t.items {
			if err := writePayload(buf, item, depth+1); err != nil {
				return err
			}
		}
	case *Compound:
		for _, key := range t.keys {
			child := t.values[key]
			buf.WriteByte(byte(child.Kind()))
			if err := writeString(buf, key); err != nil {
				return err
			}
			if err := writePayload(buf, child, depth+1); err != nil {
				return err
			}
		}
		buf.WriteByte(byte(KindEnd))
	default:
		return errors.InvalidArgumentf("unsupported tag value %T", v)
	}
	return nil
}
