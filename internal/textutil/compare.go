package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// Compose returns s in NFC so that a base letter followed by a combining mark
// ("u" + U+0308) becomes the single precomposed rune ("ü").
func Compose(s string) string {
	return norm.NFC.String(s)
}

// Fold trims s, composes it to NFC, and applies Unicode case folding so that
// "Mā" and "mā" (composed or decomposed) compare equal.
func Fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return folder.String(Compose(s))
}

// Equivalent reports whether a and b match after Fold.
func Equivalent(a, b string) bool {
	return Fold(a) == Fold(b)
}

// EquivalentAny reports whether s is Equivalent to any entry in candidates.
func EquivalentAny(candidates []string, s string) bool {
	target := Fold(s)
	for _, candidate := range candidates {
		if Fold(candidate) == target {
			return true
		}
	}
	return false
}
