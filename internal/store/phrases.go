package store

import (
	"context"
	"slices"
	"strings"

	"hzcli/internal/deck"
	"hzcli/internal/logging"
	"hzcli/internal/services"
)

// GeneratePhrase asks the content generator for a phrase built from words,
// optionally featuring focus, that differs from every previous phrase. An
// empty or repeated phrase fails with ErrNoResult.
func (s *Store) GeneratePhrase(ctx context.Context, deckName string, words, previous []string, focus string) (string, deck.Phrase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.loadRegistered("generate phrase", deckName); err != nil {
		return "", deck.Phrase{}, err
	}
	if len(words) == 0 {
		return "", deck.Phrase{}, services.Wrap(services.ErrArgument, "store", "generate phrase", "no words provided for phrase generation", nil)
	}
	gen, err := s.requireGenerator("generate phrase")
	if err != nil {
		return "", deck.Phrase{}, err
	}

	logger := logging.WithContext(ctx, s.logger)
	generated, err := gen.GeneratePhrase(ctx, words, previous, strings.TrimSpace(focus))
	if err != nil {
		logging.WarnWithContext(logger, "content generator failed", "phrase_generation_failed",
			logging.String(logging.FieldDeck, deckName),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the API key and network, then retry"),
			logging.String(logging.FieldImpact, "no phrase was generated"))
		return "", deck.Phrase{}, err
	}
	text := strings.TrimSpace(generated.Text)
	if text == "" || slices.Contains(previous, text) {
		return "", deck.Phrase{}, services.Wrap(services.ErrNoResult, "store", "generate phrase",
			"no more meaningful phrase could be generated with the provided words", nil)
	}
	logger.Debug("phrase generated",
		logging.String(logging.FieldDeck, deckName),
		logging.Int("candidates", len(words)),
		logging.Int("previous", len(previous)))
	return text, generated.Record(), nil
}

// SavePhrase stores a phrase record under its text in the deck's phrases.
func (s *Store) SavePhrase(deckName, text string, phrase deck.Phrase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	text = strings.TrimSpace(text)
	if text == "" {
		return services.Wrap(services.ErrArgument, "store", "save phrase", "phrase text is required", nil)
	}
	d, err := s.loadRegistered("save phrase", deckName)
	if err != nil {
		return err
	}
	if d.Phrases == nil {
		d.Phrases = map[string]deck.Phrase{}
	}
	d.Phrases[text] = phrase
	if err := s.repo.Save(deckName, d); err != nil {
		return err
	}
	s.logger.Info("phrase saved", logging.String(logging.FieldDeck, deckName), logging.String("phrase", text))
	return nil
}

// ListPhrases returns the deck's stored phrases.
func (s *Store) ListPhrases(deckName string) (map[string]deck.Phrase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.loadRegistered("list phrases", deckName)
	if err != nil {
		return nil, err
	}
	out := make(map[string]deck.Phrase, len(d.Phrases))
	for k, v := range d.Phrases {
		out[k] = v
	}
	return out, nil
}
