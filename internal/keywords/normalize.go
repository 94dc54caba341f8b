package keywords

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize produces the canonical form used for keyword identity and
// matching: trimmed, lower-cased, accents stripped ("Úber " -> "uber").
// Brazilian statements are inconsistent about casing and accents, so
// both sides of every comparison go through this.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// NFD splits accented letters into base + combining mark; dropping
	// the marks (category Mn) leaves the bare letter.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(t, s); err == nil {
		s = stripped
	}
	return strings.ToLower(s)
}
