package deck

import (
	"encoding/json"
	"sort"
	"strings"
)

// Word is a single vocabulary entry. The headword is the key of the owning
// Deck.Words map and is not repeated inside the record.
type Word struct {
	Pinyin              string   `json:"pinyin"`
	Tone                string   `json:"tone"`
	Translations        []string `json:"translations"`
	Comment             string   `json:"comment"`
	Sentence            string   `json:"sentence"`
	SentencePinyin      string   `json:"sentencePinyin"`
	SentenceTranslation string   `json:"sentenceTranslation"`
	SentenceDefinition  string   `json:"sentenceDefinition"`
	Note                string   `json:"note"`
	Level               int      `json:"level"`
	CreatedAt           string   `json:"createdAt"`
}

// UnmarshalJSON defaults Level to LevelUnset when the field is absent and
// clamps recorded levels into the valid range.
func (w *Word) UnmarshalJSON(data []byte) error {
	type rawWord Word
	raw := rawWord{Level: LevelUnset}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*w = Word(raw)
	w.Level = ClampLevel(w.Level)
	return nil
}

// Clone returns a copy of w that shares no slices with it.
func (w Word) Clone() Word {
	if w.Translations != nil {
		w.Translations = append([]string(nil), w.Translations...)
	}
	return w
}

// HasPinyin reports whether the record carries a pinyin transcription.
func (w Word) HasPinyin() bool {
	return strings.TrimSpace(w.Pinyin) != ""
}

// HasTranslations reports whether the record has at least one translation.
func (w Word) HasTranslations() bool {
	for _, t := range w.Translations {
		if strings.TrimSpace(t) != "" {
			return true
		}
	}
	return false
}

// Phrase is a generated phrase stored under its own text in Deck.Phrases.
type Phrase struct {
	Pinyin      string `json:"pinyin"`
	Translation string `json:"translation"`
	Note        string `json:"note,omitempty"`
}

// GeneratedPhrase is the content generator's answer to a phrase request. An
// empty Text means no meaningful or novel phrase could be formed.
type GeneratedPhrase struct {
	Text        string
	Pinyin      string
	Translation string
	Note        string
}

// Record converts the generated phrase into its persisted form.
func (g GeneratedPhrase) Record() Phrase {
	return Phrase{
		Pinyin:      strings.TrimSpace(g.Pinyin),
		Translation: strings.TrimSpace(g.Translation),
		Note:        strings.TrimSpace(g.Note),
	}
}

// Deck is the content of one deck file.
type Deck struct {
	Words       map[string]Word   `json:"words"`
	Phrases     map[string]Phrase `json:"phrases,omitempty"`
	Description string            `json:"description,omitempty"`
}

// New returns an empty deck with the given description.
func New(description string) *Deck {
	return &Deck{
		Words:       map[string]Word{},
		Phrases:     map[string]Phrase{},
		Description: strings.TrimSpace(description),
	}
}

// Headwords returns the deck's headwords in sorted order.
func (d *Deck) Headwords() []string {
	if d == nil {
		return nil
	}
	return SortedHeadwords(d.Words)
}

// SortedHeadwords returns the keys of words in sorted order.
func SortedHeadwords(words map[string]Word) []string {
	keys := make([]string, 0, len(words))
	for key := range words {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (d *Deck) ensureMaps() {
	if d.Words == nil {
		d.Words = map[string]Word{}
	}
	if d.Phrases == nil {
		d.Phrases = map[string]Phrase{}
	}
}
