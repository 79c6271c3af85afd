package names

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	// MinExternalWords and MaxExternalWords bound the token count accepted
	// from sources outside the built-in generator.
	MinExternalWords = 2
	MaxExternalWords = 4
)

// Normalize composes the string to NFC, collapses whitespace runs to single
// spaces and trims. Remote sources mix precomposed and combining-mark
// spellings of the same name; NFC makes them compare equal.
func Normalize(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// Words returns the number of whitespace separated tokens.
func Words(s string) int {
	return len(strings.Fields(s))
}

// ValidExternal reports whether an externally sourced candidate looks like a
// full name: 2 to 4 tokens.
func ValidExternal(s string) bool {
	n := Words(s)
	return n >= MinExternalWords && n <= MaxExternalWords
}

// Dedupe trims every entry, drops empties and keeps the first occurrence of
// each name.
func Dedupe(items []string) []string {
	seen := make(Set, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" || seen.Has(it) {
			continue
		}
		seen.Add(it)
		out = append(out, it)
	}
	return out
}
