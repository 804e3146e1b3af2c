package main

import (
	"fmt"
	"io"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// printer writes console output, optionally folded to ASCII for terminals
// that cannot render names like "Flabébé"
type printer struct {
	w     io.Writer
	ascii bool
}

func newPrinter(w io.Writer, ascii bool) *printer {
	return &printer{w: w, ascii: ascii}
}

func (p *printer) Printf(format string, args ...any) {
	s := fmt.Sprintf(format, args...)
	if p.ascii {
		s = foldASCII(s)
	}
	_, _ = io.WriteString(p.w, s)
}

// Shiny is the marker printed next to shiny creatures
func (p *printer) Shiny(shiny bool) string {
	switch {
	case !shiny:
		return " "
	case p.ascii:
		return "*"
	}
	return "★"
}

// foldASCII strips accents and replaces anything still outside ASCII
func foldASCII(s string) string {
	t := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(func(r rune) rune {
			if r > unicode.MaxASCII {
				return '?'
			}
			return r
		}),
	)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
