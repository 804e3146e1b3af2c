package nbt

import (
	"unicode/utf16"
	"unicode/utf8"
)

// NBT strings use Java's modified UTF-8: NUL is two bytes and characters
// outside the BMP are written as surrogate pairs of three bytes each.

func decodeMUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}

	units := make([]uint16, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c < 0x80:
			units = append(units, uint16(c))
			i++
		case c&0xE0 == 0xC0 && i+1 < len(b):
			units = append(units, uint16(c&0x1F)<<6|uint16(b[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0 && i+2 < len(b):
			units = append(units, uint16(c&0x0F)<<12|uint16(b[i+1]&0x3F)<<6|uint16(b[i+2]&0x3F))
			i += 3
		default:
			r, size := utf8.DecodeRune(b[i:])
			units = append(units, utf16.Encode([]rune{r})...)
			i += size
		}
	}
	return string(utf16.Decode(units))
}

func encodeMUTF8(s string) []byte {
	plain := true
	for _, r := range s {
		if r == 0 || r > 0xFFFF {
			plain = false
			break
		}
	}
	if plain {
		return []byte(s)
	}

	out := make([]byte, 0, len(s)+8)
	for _, unit := range utf16.Encode([]rune(s)) {
		switch {
		case unit != 0 && unit < 0x80:
			out = append(out, byte(unit))
		case unit < 0x800:
			out = append(out, 0xC0|byte(unit>>6), 0x80|byte(unit&0x3F))
		default:
			out = append(out, 0xE0|byte(unit>>12), 0x80|byte(unit>>6&0x3F), 0x80|byte(unit&0x3F))
		}
	}
	return out
}
