package deck

import (
	"fmt"
	"strconv"
	"strings"

	"hzcli/internal/services"
)

const (
	// LevelUnset marks a word without an assigned confidence level.
	LevelUnset = -1
	// LevelMin is the lowest assigned confidence level.
	LevelMin = 0
	// LevelMax is the highest confidence level.
	LevelMax = 10
)

// ValidateLevel rejects levels outside [LevelUnset, LevelMax].
func ValidateLevel(level int) error {
	if level < LevelUnset || level > LevelMax {
		return services.Wrap(services.ErrArgument, "deck", "level",
			fmt.Sprintf("level must be a number between %d (not set) and %d (max confidence), got %d", LevelUnset, LevelMax, level), nil)
	}
	return nil
}

// ParseLevel parses a user-supplied level string.
func ParseLevel(value string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, services.Wrap(services.ErrArgument, "deck", "level",
			fmt.Sprintf("level must be a number between %d (not set) and %d (max confidence)", LevelUnset, LevelMax), err)
	}
	if err := ValidateLevel(parsed); err != nil {
		return 0, err
	}
	return parsed, nil
}

// ClampLevel forces level into [LevelUnset, LevelMax].
func ClampLevel(level int) int {
	switch {
	case level < LevelUnset:
		return LevelUnset
	case level > LevelMax:
		return LevelMax
	default:
		return level
	}
}

// LevelUp raises level by one, capped at LevelMax. An unset level becomes
// LevelMin.
func LevelUp(level int) int {
	return min(level+1, LevelMax)
}

// LevelDown lowers level by one, floored at LevelMin.
func LevelDown(level int) int {
	return max(level-1, LevelMin)
}

// LevelFilter selects words by confidence level. The zero value matches every
// word; an unset level only matches when requested explicitly.
type LevelFilter struct {
	Level   int
	Enabled bool
}

// AnyLevel matches all words.
func AnyLevel() LevelFilter {
	return LevelFilter{}
}

// ExactLevel matches words whose level equals level.
func ExactLevel(level int) LevelFilter {
	return LevelFilter{Level: level, Enabled: true}
}

// Match reports whether w passes the filter.
func (f LevelFilter) Match(w Word) bool {
	if !f.Enabled {
		return true
	}
	return w.Level == f.Level
}

// Apply returns the subset of words that pass the filter.
func (f LevelFilter) Apply(words map[string]Word) map[string]Word {
	out := make(map[string]Word, len(words))
	for key, w := range words {
		if f.Match(w) {
			out[key] = w
		}
	}
	return out
}
