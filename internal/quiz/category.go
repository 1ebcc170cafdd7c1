package quiz

import (
	"fmt"
	"strings"

	"hzcli/internal/deck"
	"hzcli/internal/services"
)

// Category is the direction of a quiz question.
type Category int

const (
	ChineseToPinyin Category = iota
	ChineseToMeaning
	MeaningToChinese
	MeaningToPinyin
)

// MixedKind selects every category.
const MixedKind = "mixed"

// Categories lists every category in display order.
var Categories = []Category{ChineseToPinyin, ChineseToMeaning, MeaningToChinese, MeaningToPinyin}

func (c Category) String() string {
	switch c {
	case ChineseToPinyin:
		return "chinese-pinyin"
	case ChineseToMeaning:
		return "chinese-english"
	case MeaningToChinese:
		return "english-chinese"
	case MeaningToPinyin:
		return "english-pinyin"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Label is the human-readable direction used in summaries.
func (c Category) Label() string {
	switch c {
	case ChineseToPinyin:
		return "Chinese → Pinyin"
	case ChineseToMeaning:
		return "Chinese → English"
	case MeaningToChinese:
		return "English → Chinese"
	case MeaningToPinyin:
		return "English → Pinyin"
	default:
		return c.String()
	}
}

// eligible reports whether w can be asked in this category.
func (c Category) eligible(w deck.Word) bool {
	switch c {
	case ChineseToPinyin, MeaningToPinyin:
		return w.HasPinyin()
	case ChineseToMeaning, MeaningToChinese:
		return w.HasTranslations()
	default:
		return false
	}
}

// KindNames lists the names ParseKind accepts.
func KindNames() []string {
	names := []string{MixedKind}
	for _, c := range Categories {
		names = append(names, c.String())
	}
	return names
}

// ParseKind resolves a quiz kind name into the categories it covers.
func ParseKind(name string) ([]Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == MixedKind {
		return append([]Category(nil), Categories...), nil
	}
	for _, c := range Categories {
		if c.String() == name {
			return []Category{c}, nil
		}
	}
	return nil, services.Wrap(services.ErrArgument, "quiz", "parse kind",
		fmt.Sprintf("unknown test kind %q (available kinds: %s)", name, strings.Join(KindNames(), ", ")), nil)
}
