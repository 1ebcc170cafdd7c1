package llm

import (
	"context"
	"fmt"
	"strings"

	"hzcli/internal/deck"
	"hzcli/internal/services"
)

const wordPrompt = `Provide the definition and pinyin for the word "%s" in Chinese Simplified.
Respond with a JSON object with these keys:
"definition": literal English translation of the word. Separate multiple translations with ", ". Nothing else.
"note": a very brief explanation of usage when the literal translation does not capture the meaning, otherwise "". Prefer "third-person singular feminine pronoun" over "Used as a third-person singular feminine pronoun in Chinese".
"pinyin": the pinyin of the word with tone marks.
"tone": "1", "2", "3", "4" or "-" for the neutral tone.
"sentence": a short example sentence using the word.
"sentencePinyin": the pinyin of the example sentence with tone marks.
"sentenceTranslation": the English translation of the example sentence.
"sentenceDefinition": the meaning of the sentence when the translation is not literal, otherwise "".
Return only the JSON object.`

type wordPayload struct {
	Definition          string   `json:"definition"`
	Translations        []string `json:"translations"`
	Note                string   `json:"note"`
	Pinyin              string   `json:"pinyin"`
	Tone                string   `json:"tone"`
	Sentence            string   `json:"sentence"`
	SentencePinyin      string   `json:"sentencePinyin"`
	SentenceTranslation string   `json:"sentenceTranslation"`
	SentenceDefinition  string   `json:"sentenceDefinition"`
}

// FetchWordData asks the model for the linguistic metadata of headword. The
// returned record has no comment, level or creation time.
func (c *Client) FetchWordData(ctx context.Context, headword string) (deck.Word, error) {
	const op = "fetch word data"
	if !c.HasAPIKey() {
		return deck.Word{}, services.Wrap(services.ErrAuthRequired, component, op, "API key is required for LLM operations", nil)
	}
	headword = strings.TrimSpace(headword)
	if headword == "" {
		return deck.Word{}, services.Wrap(services.ErrArgument, component, op, "word is required", nil)
	}

	content, err := c.CompleteJSON(ctx, op, fmt.Sprintf(wordPrompt, headword))
	if err != nil {
		return deck.Word{}, err
	}
	var payload wordPayload
	if err := DecodeObject(content, &payload); err != nil {
		return deck.Word{}, services.Wrap(services.ErrMalformedResponse, component, op, "failed to parse word data", err)
	}
	if strings.TrimSpace(payload.Pinyin) == "" && strings.TrimSpace(payload.Definition) == "" && len(payload.Translations) == 0 {
		return deck.Word{}, services.Wrap(services.ErrMalformedResponse, component, op,
			"word data has neither pinyin nor definition: "+snippet(content), nil)
	}
	return payload.word(), nil
}

func (p wordPayload) word() deck.Word {
	translations := splitList(p.Definition)
	for _, t := range p.Translations {
		if t = strings.TrimSpace(t); t != "" {
			translations = append(translations, t)
		}
	}
	return deck.Word{
		Pinyin:              strings.TrimSpace(p.Pinyin),
		Tone:                normalizeTone(p.Tone),
		Translations:        translations,
		Sentence:            strings.TrimSpace(p.Sentence),
		SentencePinyin:      strings.TrimSpace(p.SentencePinyin),
		SentenceTranslation: strings.TrimSpace(p.SentenceTranslation),
		SentenceDefinition:  strings.TrimSpace(p.SentenceDefinition),
		Note:                strings.TrimSpace(p.Note),
		Level:               deck.LevelUnset,
	}
}

func normalizeTone(tone string) string {
	switch tone = strings.TrimSpace(tone); tone {
	case "1", "2", "3", "4":
		return tone
	default:
		return "-"
	}
}
