package store

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"hzcli/internal/deck"
	"hzcli/internal/logging"
	"hzcli/internal/services"
)

//go:embed base_decks/*.json
var bundledStarters embed.FS

// BundledStarters returns the starter decks shipped with hzcli.
func BundledStarters() fs.FS {
	sub, err := fs.Sub(bundledStarters, "base_decks")
	if err != nil {
		panic(fmt.Sprintf("store: bundled starter decks: %v", err))
	}
	return sub
}

// bootstrap creates the metadata file and default deck on first use and seeds
// starter decks the store has never seen.
func (s *Store) bootstrap(opts Options) error {
	found, err := s.loadMetadata()
	if err != nil {
		return err
	}
	dirty := !found
	if !found {
		s.meta = Metadata{DeckNames: []string{DefaultDeck}}
		s.logger.Info("created store metadata", logging.String("path", s.metaPath))
	}
	if !s.hasDeck(DefaultDeck) {
		s.meta.DeckNames = append([]string{DefaultDeck}, s.meta.DeckNames...)
		dirty = true
	}

	exists, err := s.repo.Exists(DefaultDeck)
	if err != nil {
		return services.Wrap(services.ErrInvalidState, "store", "open", "stat default deck", err)
	}
	if !exists {
		if err := s.repo.Save(DefaultDeck, deck.New(DefaultDeckDescription)); err != nil {
			return err
		}
		s.logger.Info("created default deck", logging.String(logging.FieldDeck, DefaultDeck))
	}

	if opts.SeedStarters {
		starters := opts.Starters
		if starters == nil {
			starters = BundledStarters()
		}
		seeded, err := s.seedStarters(starters)
		if err != nil {
			return err
		}
		dirty = dirty || seeded
	}

	if dirty {
		return s.persistMetadata()
	}
	return nil
}

func (s *Store) seedStarters(starters fs.FS) (bool, error) {
	files, err := fs.Glob(starters, "*"+deck.FileExt)
	if err != nil {
		return false, services.Wrap(services.ErrInvalidState, "store", "seed", "list starter decks", err)
	}
	slices.Sort(files)

	changed := false
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), deck.FileExt)
		if name == DefaultDeck || s.hasDeck(name) || slices.Contains(s.meta.SeededDecks, name) {
			continue
		}
		data, err := fs.ReadFile(starters, file)
		if err != nil {
			return changed, services.Wrap(services.ErrInvalidState, "store", "seed", fmt.Sprintf("read starter deck %q", name), err)
		}
		d, err := deck.Decode(data)
		if err != nil {
			return changed, services.Wrap(services.ErrCorrupted, "store", "seed", fmt.Sprintf("starter deck %q", name), err)
		}
		exists, err := s.repo.Exists(name)
		if err != nil {
			return changed, services.Wrap(services.ErrInvalidState, "store", "seed", fmt.Sprintf("stat deck %q", name), err)
		}
		if !exists {
			if err := s.repo.Save(name, d); err != nil {
				return changed, err
			}
		}
		s.register(name)
		s.meta.SeededDecks = append(s.meta.SeededDecks, name)
		changed = true
		s.logger.Info("added starter deck",
			logging.String(logging.FieldDeck, name),
			logging.Int("words", len(d.Words)))
	}
	return changed, nil
}
