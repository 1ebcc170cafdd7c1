package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"hzcli/internal/deck"
	"hzcli/internal/logging"
	"hzcli/internal/services"
)

// DeckSummary describes one registered deck.
type DeckSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Words       int    `json:"words"`
	Phrases     int    `json:"phrases"`
}

// ImportMode records how ImportDeck resolved the incoming deck.
type ImportMode string

const (
	ImportCreated  ImportMode = "created"
	ImportMerged   ImportMode = "merged"
	ImportReplaced ImportMode = "replaced"
)

// ImportResult reports the outcome of ImportDeck.
type ImportResult struct {
	Name  string
	Mode  ImportMode
	Added []string
}

// ListDecks returns a summary of every registered deck in registry order.
func (s *Store) ListDecks() ([]DeckSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]DeckSummary, 0, len(s.meta.DeckNames))
	for _, name := range s.meta.DeckNames {
		d, err := s.loadRegistered("list decks", name)
		if err != nil {
			return nil, err
		}
		out = append(out, DeckSummary{
			Name:        name,
			Description: d.Description,
			Words:       len(d.Words),
			Phrases:     len(d.Phrases),
		})
	}
	return out, nil
}

// GetDeck loads a registered deck.
func (s *Store) GetDeck(name string) (*deck.Deck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadRegistered("get deck", name)
}

// AddDeck creates and registers an empty deck.
func (s *Store) AddDeck(name, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if err := validateDeckName("add deck", name); err != nil {
		return err
	}
	if s.hasDeck(name) {
		return services.Wrap(services.ErrAlreadyExists, "store", "add deck", fmt.Sprintf("deck %q already exists", name), nil)
	}
	if err := s.repo.Save(name, deck.New(description)); err != nil {
		return err
	}
	s.register(name)
	if err := s.persistMetadata(); err != nil {
		return err
	}
	s.logger.Info("deck added", logging.String(logging.FieldDeck, name))
	return nil
}

// RemoveDeck deletes a deck's file and unregisters it. The default deck is
// protected.
func (s *Store) RemoveDeck(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == DefaultDeck {
		return services.Wrap(services.ErrProtected, "store", "remove deck", "the default deck cannot be removed", nil)
	}
	if !s.hasDeck(name) {
		return services.Wrap(services.ErrNotFound, "store", "remove deck", fmt.Sprintf("deck %q does not exist", name), nil)
	}
	if err := s.deleteDeckFile(name); err != nil {
		return err
	}
	s.unregister(name)
	if err := s.persistMetadata(); err != nil {
		return err
	}
	s.logger.Info("deck removed", logging.String(logging.FieldDeck, name))
	return nil
}

// MergeDecks copies every word of source missing from target into target.
// Target entries are never overwritten. When deleteSource is set the source
// deck is removed afterwards. The added headwords are returned.
func (s *Store) MergeDecks(target, source string, deleteSource bool) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if target == source {
		return nil, services.Wrap(services.ErrArgument, "store", "merge decks", "cannot merge a deck into itself", nil)
	}
	if deleteSource && source == DefaultDeck {
		return nil, services.Wrap(services.ErrProtected, "store", "merge decks", "the default deck cannot be removed", nil)
	}
	targetDeck, err := s.loadRegistered("merge decks", target)
	if err != nil {
		return nil, err
	}
	sourceDeck, err := s.loadRegistered("merge decks", source)
	if err != nil {
		return nil, err
	}

	added := targetDeck.Merge(sourceDeck)
	if err := s.repo.Save(target, targetDeck); err != nil {
		return nil, err
	}

	if deleteSource {
		if err := s.deleteDeckFile(source); err != nil {
			return added, err
		}
		s.unregister(source)
		if err := s.persistMetadata(); err != nil {
			return added, err
		}
	}
	s.logger.Info("decks merged",
		logging.String("target", target),
		logging.String("source", source),
		logging.Int("added", len(added)),
		logging.Bool("source_deleted", deleteSource))
	return added, nil
}

// ImportDeck registers d under name. When name is already registered, merge
// folds d into the existing deck (existing words win) and replace overwrites
// it; requesting both is an argument conflict, requesting neither fails with
// ErrAlreadyExists.
func (s *Store) ImportDeck(name string, d *deck.Deck, merge, replace bool) (ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := ImportResult{Name: strings.TrimSpace(name)}
	if merge && replace {
		return result, services.Wrap(services.ErrArgumentConflict, "store", "import deck", "use merge or replace, not both", nil)
	}
	if err := validateDeckName("import deck", result.Name); err != nil {
		return result, err
	}
	if d == nil {
		return result, services.Wrap(services.ErrArgument, "store", "import deck", "no deck content", nil)
	}

	if !s.hasDeck(result.Name) {
		if err := s.repo.Save(result.Name, d); err != nil {
			return result, err
		}
		s.register(result.Name)
		if err := s.persistMetadata(); err != nil {
			return result, err
		}
		result.Mode = ImportCreated
		result.Added = d.Headwords()
		s.logImport(result)
		return result, nil
	}

	switch {
	case merge:
		added, err := s.mergeStaged(result.Name, d)
		if err != nil {
			return result, err
		}
		result.Mode = ImportMerged
		result.Added = added
	case replace:
		if err := s.deleteDeckFile(result.Name); err != nil {
			return result, err
		}
		if err := s.repo.Save(result.Name, d); err != nil {
			return result, err
		}
		result.Mode = ImportReplaced
		result.Added = d.Headwords()
	default:
		return result, services.Wrap(services.ErrAlreadyExists, "store", "import deck",
			fmt.Sprintf("deck %q already exists (use merge or replace)", result.Name), nil)
	}
	s.logImport(result)
	return result, nil
}

// mergeStaged writes the incoming deck under an unregistered staging name,
// merges it into name, and removes the staging file. The staging name starts
// with a dot, which deck names never do.
func (s *Store) mergeStaged(name string, incoming *deck.Deck) ([]string, error) {
	staging := ".import-" + uuid.NewString()
	if err := s.repo.Save(staging, incoming); err != nil {
		return nil, err
	}
	defer func() {
		if err := s.repo.Delete(staging); err != nil && !errors.Is(err, services.ErrNotFound) {
			logging.WarnWithContext(s.logger, "failed to remove import staging deck", "import_staging_cleanup_failed",
				logging.String(logging.FieldDeck, staging),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "delete the file from the decks directory"),
				logging.String(logging.FieldImpact, "a stray staging file remains on disk"))
		}
	}()

	staged, err := s.repo.Load(staging)
	if err != nil {
		return nil, err
	}
	target, err := s.loadRegistered("import deck", name)
	if err != nil {
		return nil, err
	}
	added := target.Merge(staged)
	if err := s.repo.Save(name, target); err != nil {
		return nil, err
	}
	return added, nil
}

func (s *Store) logImport(result ImportResult) {
	s.logger.Info("deck imported",
		logging.String(logging.FieldDeck, result.Name),
		logging.String("mode", string(result.Mode)),
		logging.Int("added", len(result.Added)))
}

// ExportDeck writes a registered deck to <dir>/<name>.json and returns the
// path. An existing file is only replaced when force is set.
func (s *Store) ExportDeck(name, dir string, force bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.loadRegistered("export deck", name)
	if err != nil {
		return "", err
	}
	path, err := deck.WriteInterchange(dir, name, d, force)
	if err != nil {
		return "", err
	}
	s.logger.Info("deck exported", logging.String(logging.FieldDeck, name), logging.String("path", path))
	return path, nil
}

// CloneDeck registers target as an independent deep copy of source.
func (s *Store) CloneDeck(target, source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target = strings.TrimSpace(target)
	if err := validateDeckName("clone deck", target); err != nil {
		return err
	}
	if s.hasDeck(target) {
		return services.Wrap(services.ErrAlreadyExists, "store", "clone deck", fmt.Sprintf("deck %q already exists", target), nil)
	}
	sourceDeck, err := s.loadRegistered("clone deck", source)
	if err != nil {
		return err
	}
	if err := s.repo.Save(target, sourceDeck.Clone()); err != nil {
		return err
	}
	s.register(target)
	if err := s.persistMetadata(); err != nil {
		return err
	}
	s.logger.Info("deck cloned", logging.String("target", target), logging.String("source", source))
	return nil
}

// deleteDeckFile removes a registered deck's file. A file that is already
// gone only leaves a dangling registry entry, which the caller is about to
// clear or overwrite.
func (s *Store) deleteDeckFile(name string) error {
	err := s.repo.Delete(name)
	if err == nil {
		return nil
	}
	if errors.Is(err, services.ErrNotFound) {
		logging.WarnWithContext(s.logger, "deck file already missing", "deck_file_missing",
			logging.String(logging.FieldDeck, name),
			logging.String(logging.FieldErrorHint, "the registry entry is being cleared"),
			logging.String(logging.FieldImpact, "none"))
		return nil
	}
	return err
}
