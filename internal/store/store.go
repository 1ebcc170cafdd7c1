package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"hzcli/internal/deck"
	"hzcli/internal/fileutil"
	"hzcli/internal/logging"
	"hzcli/internal/services"
	"hzcli/internal/textutil"
)

const (
	// DefaultDeck is the reserved deck that always exists and can never be removed.
	DefaultDeck = "default"
	// DefaultDeckDescription is the description of a freshly created default deck.
	DefaultDeckDescription = "Default Deck"

	metadataFile = "store.json"
	decksDir     = "decks"
	lockFile     = "hzcli.lock"
)

// Generator produces word data and phrases for the store.
type Generator interface {
	FetchWordData(ctx context.Context, headword string) (deck.Word, error)
	GeneratePhrase(ctx context.Context, words, previous []string, focus string) (deck.GeneratedPhrase, error)
}

// GeneratorFactory builds a Generator for the effective API key. It is called
// at Open and again whenever the key changes.
type GeneratorFactory func(apiKey string) Generator

// Metadata is the persisted registry.
type Metadata struct {
	APIKey      string   `json:"apiKey,omitempty"`
	DeckNames   []string `json:"deckNames"`
	SeededDecks []string `json:"seededDecks,omitempty"`
}

// Options configures Open.
type Options struct {
	// DataDir holds store.json, decks/, and the lock file.
	DataDir string
	Logger  *slog.Logger
	// NewGenerator builds the content generator. Nil disables generation.
	NewGenerator GeneratorFactory
	// FallbackAPIKey is used when the metadata carries no key.
	FallbackAPIKey string
	// SeedStarters copies bundled starter decks into a store that has not seen them.
	SeedStarters bool
	// Starters overrides the bundled starter decks; files are <name>.json at the root.
	Starters fs.FS
	// Now overrides the clock used for createdAt stamps.
	Now func() time.Time
}

// Store is an open deck store. Close releases the data directory lock.
type Store struct {
	mu           sync.Mutex
	dataDir      string
	metaPath     string
	repo         *deck.Repository
	meta         Metadata
	lock         *flock.Flock
	logger       *slog.Logger
	newGenerator GeneratorFactory
	fallbackKey  string
	generator    Generator
	now          func() time.Time
}

// Open locks dataDir, bootstraps it on first use, and loads the registry.
func Open(opts Options) (*Store, error) {
	dataDir := strings.TrimSpace(opts.DataDir)
	if dataDir == "" {
		return nil, services.Wrap(services.ErrArgument, "store", "open", "data directory is required", nil)
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrInvalidState, "store", "open", "create data directory", err)
	}

	lock := flock.New(filepath.Join(dataDir, lockFile))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrInvalidState, "store", "open", "acquire store lock", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrLocked, "store", "open",
			fmt.Sprintf("another hzcli process is using %s", dataDir), nil)
	}

	logger := logging.NewComponentLogger(opts.Logger, "store")
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	s := &Store{
		dataDir:      dataDir,
		metaPath:     filepath.Join(dataDir, metadataFile),
		repo:         deck.NewRepository(filepath.Join(dataDir, decksDir), opts.Logger),
		lock:         lock,
		logger:       logger,
		newGenerator: opts.NewGenerator,
		fallbackKey:  strings.TrimSpace(opts.FallbackAPIKey),
		now:          now,
	}

	if err := s.bootstrap(opts); err != nil {
		_ = lock.Unlock()
		return nil, err
	}
	s.rebuildGenerator()
	return s, nil
}

// Close releases the data directory lock. Every mutation has already been
// persisted when it returned.
func (s *Store) Close() error {
	if s == nil || s.lock == nil {
		return nil
	}
	if err := s.lock.Unlock(); err != nil {
		return fmt.Errorf("release store lock: %w", err)
	}
	return nil
}

// DataDir returns the data directory the store was opened on.
func (s *Store) DataDir() string {
	return s.dataDir
}

// DecksDir returns the directory holding deck files.
func (s *Store) DecksDir() string {
	return s.repo.Dir()
}

// SetAPIKey persists key into the metadata and rebuilds the generator. An
// empty key clears the stored credential.
func (s *Store) SetAPIKey(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.meta.APIKey
	s.meta.APIKey = strings.TrimSpace(key)
	if err := s.persistMetadata(); err != nil {
		s.meta.APIKey = previous
		return err
	}
	s.rebuildGenerator()
	s.logger.Info("api key updated", logging.Bool("stored", s.meta.APIKey != ""))
	return nil
}

// HasAPIKey reports whether a credential is available from metadata or the fallback.
func (s *Store) HasAPIKey() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.effectiveAPIKey() != ""
}

// DeckNames returns the registered deck names in registry order.
func (s *Store) DeckNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.meta.DeckNames)
}

// HasDeck reports whether name is registered.
func (s *Store) HasDeck(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasDeck(name)
}

func (s *Store) effectiveAPIKey() string {
	return textutil.FirstNonEmpty(s.meta.APIKey, s.fallbackKey)
}

func (s *Store) rebuildGenerator() {
	if s.newGenerator == nil {
		s.generator = nil
		return
	}
	s.generator = s.newGenerator(s.effectiveAPIKey())
}

func (s *Store) requireGenerator(operation string) (Generator, error) {
	if s.generator == nil {
		return nil, services.Wrap(services.ErrInvalidState, "store", operation, "no content generator configured", nil)
	}
	return s.generator, nil
}

func (s *Store) hasDeck(name string) bool {
	return slices.Contains(s.meta.DeckNames, name)
}

func (s *Store) register(name string) {
	if !s.hasDeck(name) {
		s.meta.DeckNames = append(s.meta.DeckNames, name)
	}
}

func (s *Store) unregister(name string) {
	s.meta.DeckNames = slices.DeleteFunc(s.meta.DeckNames, func(n string) bool { return n == name })
}

// loadRegistered loads a deck that must be registered. A missing file for a
// registered deck is reported as corruption that still matches ErrNotFound.
func (s *Store) loadRegistered(operation, name string) (*deck.Deck, error) {
	if !s.hasDeck(name) {
		return nil, services.Wrap(services.ErrNotFound, "store", operation, fmt.Sprintf("deck %q does not exist", name), nil)
	}
	d, err := s.repo.Load(name)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return nil, services.Wrap(services.ErrCorrupted, "store", operation,
				fmt.Sprintf("deck %q is registered but its file is missing", name), err)
		}
		return nil, err
	}
	return d, nil
}

func validateDeckName(operation, name string) error {
	if !textutil.IsSafeFileName(name) {
		return services.Wrap(services.ErrArgument, "store", operation,
			fmt.Sprintf("invalid deck name %q (at most %d bytes, no leading dot or surrounding spaces, none of %s)",
				name, textutil.MaxFileNameBytes, `/\:*?"<>|`), nil)
	}
	return nil
}

func (s *Store) loadMetadata() (bool, error) {
	data, err := os.ReadFile(s.metaPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, services.Wrap(services.ErrInvalidState, "store", "open", "read metadata", err)
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return false, services.Wrap(services.ErrCorrupted, "store", "open", fmt.Sprintf("parse %s", s.metaPath), err)
	}
	meta.APIKey = strings.TrimSpace(meta.APIKey)
	meta.DeckNames = dedupe(meta.DeckNames)
	meta.SeededDecks = dedupe(meta.SeededDecks)
	s.meta = meta
	return true, nil
}

func (s *Store) persistMetadata() error {
	meta := s.meta
	if meta.DeckNames == nil {
		meta.DeckNames = []string{}
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return services.Wrap(services.ErrInvalidState, "store", "persist", "encode metadata", err)
	}
	if err := fileutil.WriteFileAtomic(s.metaPath, append(data, '\n'), 0o600); err != nil {
		return services.Wrap(services.ErrInvalidState, "store", "persist", "write metadata", err)
	}
	s.logger.Debug("persisted metadata", logging.Int("decks", len(meta.DeckNames)))
	return nil
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
