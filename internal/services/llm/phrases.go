package llm

import (
	"context"
	"fmt"
	"strings"

	"hzcli/internal/deck"
	"hzcli/internal/services"
)

type phrasePayload struct {
	Phrase      string `json:"phrase"`
	Pinyin      string `json:"pinyin"`
	Translation string `json:"translation"`
	Meaningful  bool   `json:"meaningful"`
	Note        string `json:"note"`
}

// GeneratePhrase asks the model for a simplified Chinese phrase built from
// words. A phrase the model marks as not meaningful, or that repeats the
// concepts of a previous phrase, comes back as an empty GeneratedPhrase.
func (c *Client) GeneratePhrase(ctx context.Context, words, previous []string, focus string) (deck.GeneratedPhrase, error) {
	const op = "generate phrase"
	if !c.HasAPIKey() {
		return deck.GeneratedPhrase{}, services.Wrap(services.ErrAuthRequired, component, op, "API key is required for LLM operations", nil)
	}
	if len(words) == 0 {
		return deck.GeneratedPhrase{}, services.Wrap(services.ErrArgument, component, op, "no words provided", nil)
	}

	content, err := c.CompleteJSON(ctx, op, phrasePrompt(words, previous, focus))
	if err != nil {
		return deck.GeneratedPhrase{}, err
	}
	var payload phrasePayload
	if err := DecodeObject(content, &payload); err != nil {
		return deck.GeneratedPhrase{}, services.Wrap(services.ErrMalformedResponse, component, op, "failed to parse phrase", err)
	}
	if !payload.Meaningful || strings.TrimSpace(payload.Phrase) == "" {
		return deck.GeneratedPhrase{}, nil
	}
	return deck.GeneratedPhrase{
		Text:        strings.TrimSpace(payload.Phrase),
		Pinyin:      strings.TrimSpace(payload.Pinyin),
		Translation: strings.TrimSpace(payload.Translation),
		Note:        strings.TrimSpace(payload.Note),
	}, nil
}

func phrasePrompt(words, previous []string, focus string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a phrase in Chinese Simplified using the following words and characters: %s.", strings.Join(words, ", "))
	if focus = strings.TrimSpace(focus); focus != "" {
		fmt.Fprintf(&b, " The phrase must include the word %q.", focus)
	}
	b.WriteString("\nIf the provided words are not sufficient to form a meaningful phrase, phrase MUST be an empty string.")
	if len(previous) > 0 {
		fmt.Fprintf(&b, "\nIf the phrase matches the concepts of one of these previously generated phrases, phrase MUST be an empty string: %s.",
			strings.Join(previous, ", "))
	}
	b.WriteString(`
Respond with a JSON object with these keys:
"phrase": the generated phrase in Chinese characters, or "".
"pinyin": the pinyin of the phrase with tone marks, with spaces between words, not between the characters of one word.
"translation": the English translation of the phrase.
"meaningful": true when the phrase is meaningful, even if simple, otherwise false.
"note": how the concepts translate when the translation is not literal, otherwise "".
Return only the JSON object.`)
	return b.String()
}
