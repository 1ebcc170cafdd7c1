package quiz

import (
	"strings"

	"hzcli/internal/deck"
	"hzcli/internal/pinyin"
	"hzcli/internal/textutil"
)

// grade reports whether response answers the question for headword/w in
// category c.
func grade(c Category, headword string, w deck.Word, response string) bool {
	response = strings.TrimSpace(response)
	if response == "" {
		return false
	}
	switch c {
	case ChineseToPinyin, MeaningToPinyin:
		// Tone patterns match precomposed ü only.
		return textutil.Equivalent(pinyin.Normalize(textutil.Compose(response)), w.Pinyin)
	case ChineseToMeaning:
		return textutil.EquivalentAny(w.Translations, response)
	case MeaningToChinese:
		return textutil.Equivalent(response, headword)
	default:
		return false
	}
}

// expected renders the accepted answer for display.
func expected(c Category, headword string, w deck.Word) string {
	switch c {
	case ChineseToPinyin, MeaningToPinyin:
		return w.Pinyin
	case ChineseToMeaning:
		return strings.Join(w.Translations, ", ")
	case MeaningToChinese:
		return headword
	default:
		return ""
	}
}

// subject renders what the question shows the user.
func subject(c Category, headword string, w deck.Word) string {
	switch c {
	case ChineseToPinyin, ChineseToMeaning:
		return headword
	default:
		return strings.Join(w.Translations, ", ")
	}
}
