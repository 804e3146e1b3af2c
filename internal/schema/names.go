package schema

import (
	"strings"
	"unicode"
)

// Namespace is the identifier prefix the game stores on species, natures
// and tera types.
const Namespace = "cobblemon:"

// StripNamespace drops everything up to the last colon
func StripNamespace(id string) string {
	if i := strings.LastIndexByte(id, ':'); i >= 0 {
		return id[i+1:]
	}
	return id
}

// Normalize lowercases a name and removes hyphens, surrounding space and
// any namespace
func Normalize(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(strings.ToLower(StripNamespace(name)), "-", ""))
}

// Namespaced normalizes a name and prefixes the game namespace
func Namespaced(name string) string {
	return Namespace + Normalize(name)
}

// Capitalize upper-cases the first rune and lower-cases the rest
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
