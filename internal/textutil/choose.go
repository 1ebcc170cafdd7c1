package textutil

import "strings"

// FirstNonEmpty returns the first value that is not blank after trimming,
// trimmed. It returns "" when every value is blank.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
