package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hzcli/internal/deck"
	"hzcli/internal/logging"
	"hzcli/internal/services"
)

// GetWord returns one word record.
func (s *Store) GetWord(deckName, headword string) (deck.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.loadRegistered("get word", deckName)
	if err != nil {
		return deck.Word{}, err
	}
	w, ok := d.Words[headword]
	if !ok {
		return deck.Word{}, wordNotFound("get word", deckName, headword)
	}
	return w.Clone(), nil
}

// HasWord reports whether the deck holds headword.
func (s *Store) HasWord(deckName, headword string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.loadRegistered("has word", deckName)
	if err != nil {
		return false, err
	}
	_, ok := d.Words[headword]
	return ok, nil
}

// ListWords returns the deck's words that pass filter.
func (s *Store) ListWords(deckName string, filter deck.LevelFilter) (map[string]deck.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.loadRegistered("list words", deckName)
	if err != nil {
		return nil, err
	}
	return filter.Apply(d.Words), nil
}

// CountWords returns how many of the deck's words pass filter.
func (s *Store) CountWords(deckName string, filter deck.LevelFilter) (int, error) {
	words, err := s.ListWords(deckName, filter)
	if err != nil {
		return 0, err
	}
	return len(words), nil
}

// AddWord asks the content generator for headword's data, applies the
// caller's comment and level, and stores the record. An empty comment keeps
// the generator's comment.
func (s *Store) AddWord(ctx context.Context, deckName, headword, comment string, level int) (deck.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	headword = strings.TrimSpace(headword)
	if headword == "" {
		return deck.Word{}, services.Wrap(services.ErrArgument, "store", "add word", "word is required", nil)
	}
	if err := deck.ValidateLevel(level); err != nil {
		return deck.Word{}, err
	}
	d, err := s.loadRegistered("add word", deckName)
	if err != nil {
		return deck.Word{}, err
	}
	if _, exists := d.Words[headword]; exists {
		return deck.Word{}, services.Wrap(services.ErrAlreadyExists, "store", "add word",
			fmt.Sprintf("word %q already exists in deck %q", headword, deckName), nil)
	}
	gen, err := s.requireGenerator("add word")
	if err != nil {
		return deck.Word{}, err
	}

	logger := logging.WithContext(ctx, s.logger)
	w, err := gen.FetchWordData(ctx, headword)
	if err != nil {
		logging.WarnWithContext(logger, "content generator failed", "word_data_failed",
			logging.String(logging.FieldDeck, deckName),
			logging.String(logging.FieldWord, headword),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the API key and network, then retry"),
			logging.String(logging.FieldImpact, "word was not added"))
		return deck.Word{}, err
	}
	w.Translations = trimTranslations(w.Translations)
	if c := strings.TrimSpace(comment); c != "" {
		w.Comment = c
	}
	w.Level = level
	w.CreatedAt = s.now().UTC().Format(time.RFC3339)

	d.Words[headword] = w
	if err := s.repo.Save(deckName, d); err != nil {
		return deck.Word{}, err
	}
	logger.Info("word added",
		logging.String(logging.FieldDeck, deckName),
		logging.String(logging.FieldWord, headword))
	return w.Clone(), nil
}

// UpdateWord replaces an existing word record.
func (s *Store) UpdateWord(deckName, headword string, w deck.Word) (deck.Word, error) {
	return s.mutateWord("update word", deckName, headword, func(current *deck.Word) error {
		if err := deck.ValidateLevel(w.Level); err != nil {
			return err
		}
		*current = w.Clone()
		current.Translations = trimTranslations(current.Translations)
		return nil
	})
}

// SetWordComment replaces a word's comment.
func (s *Store) SetWordComment(deckName, headword, comment string) (deck.Word, error) {
	return s.mutateWord("set comment", deckName, headword, func(w *deck.Word) error {
		w.Comment = strings.TrimSpace(comment)
		return nil
	})
}

// SetLevel assigns level, which must lie in [-1, 10].
func (s *Store) SetLevel(deckName, headword string, level int) (deck.Word, error) {
	return s.mutateWord("set level", deckName, headword, func(w *deck.Word) error {
		if err := deck.ValidateLevel(level); err != nil {
			return err
		}
		w.Level = level
		return nil
	})
}

// LevelUp raises a word's level by one, capped at 10.
func (s *Store) LevelUp(deckName, headword string) (deck.Word, error) {
	return s.mutateWord("level up", deckName, headword, func(w *deck.Word) error {
		w.Level = deck.LevelUp(w.Level)
		return nil
	})
}

// LevelDown lowers a word's level by one, floored at 0.
func (s *Store) LevelDown(deckName, headword string) (deck.Word, error) {
	return s.mutateWord("level down", deckName, headword, func(w *deck.Word) error {
		w.Level = deck.LevelDown(w.Level)
		return nil
	})
}

// UnsetLevel clears a word's level.
func (s *Store) UnsetLevel(deckName, headword string) (deck.Word, error) {
	return s.mutateWord("unset level", deckName, headword, func(w *deck.Word) error {
		w.Level = deck.LevelUnset
		return nil
	})
}

// RemoveWord deletes a word from the deck.
func (s *Store) RemoveWord(deckName, headword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.loadRegistered("remove word", deckName)
	if err != nil {
		return err
	}
	if _, ok := d.Words[headword]; !ok {
		return wordNotFound("remove word", deckName, headword)
	}
	delete(d.Words, headword)
	if err := s.repo.Save(deckName, d); err != nil {
		return err
	}
	s.logger.Info("word removed",
		logging.String(logging.FieldDeck, deckName),
		logging.String(logging.FieldWord, headword))
	return nil
}

// ResetWords removes every word of the deck and returns how many were removed.
func (s *Store) ResetWords(deckName string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.loadRegistered("reset words", deckName)
	if err != nil {
		return 0, err
	}
	removed := len(d.Words)
	d.Words = map[string]deck.Word{}
	if err := s.repo.Save(deckName, d); err != nil {
		return 0, err
	}
	s.logger.Info("deck words reset", logging.String(logging.FieldDeck, deckName), logging.Int("removed", removed))
	return removed, nil
}

// CopyWord copies a word record from source to dest. An existing record in
// dest is only replaced when force is set.
func (s *Store) CopyWord(source, dest, headword string, force bool) (deck.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if source == dest {
		return deck.Word{}, services.Wrap(services.ErrArgument, "store", "copy word", "source and destination decks are the same", nil)
	}
	sourceDeck, err := s.loadRegistered("copy word", source)
	if err != nil {
		return deck.Word{}, err
	}
	w, ok := sourceDeck.Words[headword]
	if !ok {
		return deck.Word{}, wordNotFound("copy word", source, headword)
	}
	destDeck, err := s.loadRegistered("copy word", dest)
	if err != nil {
		return deck.Word{}, err
	}
	if _, exists := destDeck.Words[headword]; exists && !force {
		return deck.Word{}, services.Wrap(services.ErrAlreadyExists, "store", "copy word",
			fmt.Sprintf("word %q already exists in deck %q (use --force to overwrite)", headword, dest), nil)
	}
	destDeck.Words[headword] = w.Clone()
	if err := s.repo.Save(dest, destDeck); err != nil {
		return deck.Word{}, err
	}
	s.logger.Info("word copied",
		logging.String(logging.FieldWord, headword),
		logging.String("source", source),
		logging.String("target", dest))
	return w.Clone(), nil
}

func (s *Store) mutateWord(operation, deckName, headword string, mutate func(*deck.Word) error) (deck.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.loadRegistered(operation, deckName)
	if err != nil {
		return deck.Word{}, err
	}
	w, ok := d.Words[headword]
	if !ok {
		return deck.Word{}, wordNotFound(operation, deckName, headword)
	}
	if err := mutate(&w); err != nil {
		return deck.Word{}, err
	}
	d.Words[headword] = w
	if err := s.repo.Save(deckName, d); err != nil {
		return deck.Word{}, err
	}
	s.logger.Debug("word updated",
		logging.String("operation", operation),
		logging.String(logging.FieldDeck, deckName),
		logging.String(logging.FieldWord, headword),
		logging.Int("level", w.Level))
	return w.Clone(), nil
}

func wordNotFound(operation, deckName, headword string) error {
	return services.Wrap(services.ErrNotFound, "store", operation,
		fmt.Sprintf("word %q does not exist in deck %q", headword, deckName), nil)
}

func trimTranslations(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
