package pinyin

import "strings"

// Tone identifies which diacritic a doubled vowel was converted to.
type Tone int

const (
	ToneNone Tone = iota
	ToneFirst
	ToneSecond
	ToneThird
	ToneFourth
)

// vowels lists the scan order; the first vowel matching any pattern wins.
var vowels = []rune{'a', 'e', 'i', 'o', 'u', 'ü'}

var toneMarks = map[rune][5]string{
	'a': {"a", "ā", "á", "ǎ", "à"},
	'e': {"e", "ē", "é", "ě", "è"},
	'i': {"i", "ī", "í", "ǐ", "ì"},
	'o': {"o", "ō", "ó", "ǒ", "ò"},
	'u': {"u", "ū", "ú", "ǔ", "ù"},
	'ü': {"ü", "ǖ", "ǘ", "ǚ", "ǜ"},
}

type tonePattern struct {
	tone  Tone
	build func(lower, upper string) string
}

// patterns are checked in priority order for each vowel. The triplet comes
// before its two-letter prefix so "AaA" is never read as "Aa" + "A".
var patterns = []tonePattern{
	{ToneFirst, func(lower, upper string) string { return upper + upper }},
	{ToneSecond, func(lower, upper string) string { return lower + lower }},
	{ToneThird, func(lower, upper string) string { return upper + lower + upper }},
	{ToneFourth, func(lower, upper string) string { return upper + lower }},
}

// Normalize rewrites doubled-vowel tone notation into diacritic pinyin.
// Only the first vowel (in a, e, i, o, u, ü order) that matches a pattern is
// converted, and every occurrence of that pattern is replaced. Input without
// any pattern is returned unchanged.
func Normalize(input string) string {
	out, _ := Detect(input)
	return out
}

// Detect behaves like Normalize and additionally reports the tone that was
// applied. ToneNone means the tone could not be determined from the input.
func Detect(input string) (string, Tone) {
	if input == "" {
		return "", ToneNone
	}
	for _, vowel := range vowels {
		lower := string(vowel)
		upper := strings.ToUpper(lower)
		for _, p := range patterns {
			pattern := p.build(lower, upper)
			if strings.Contains(input, pattern) {
				return strings.ReplaceAll(input, pattern, toneMarks[vowel][p.tone]), p.tone
			}
		}
	}
	return input, ToneNone
}

// String renders the tone the way word records store it: "1".."4", or "-"
// when no tone applies.
func (t Tone) String() string {
	switch t {
	case ToneFirst:
		return "1"
	case ToneSecond:
		return "2"
	case ToneThird:
		return "3"
	case ToneFourth:
		return "4"
	default:
		return "-"
	}
}
