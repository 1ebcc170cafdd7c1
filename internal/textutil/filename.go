package textutil

import (
	"strings"
	"unicode"
)

// reservedFileNameRunes cannot appear in a portable file name.
const reservedFileNameRunes = `/\:*?"<>|`

// MaxFileNameBytes caps a name stem so that the stem plus an extension and
// the atomic-write temp suffix stay under the common 255-byte limit.
const MaxFileNameBytes = 200

// IsSafeFileName reports whether name can be used verbatim as a file name
// stem on every supported platform: at most MaxFileNameBytes long, with no
// reserved or control characters, surrounding whitespace, or leading dot.
func IsSafeFileName(name string) bool {
	if name == "" || len(name) > MaxFileNameBytes || strings.HasPrefix(name, ".") || strings.TrimSpace(name) != name {
		return false
	}
	return !strings.ContainsFunc(name, func(r rune) bool {
		return unicode.IsControl(r) || strings.ContainsRune(reservedFileNameRunes, r)
	})
}
