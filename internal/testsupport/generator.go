package testsupport

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"hzcli/internal/deck"
	"hzcli/internal/services"
	"hzcli/internal/store"
)

// PhraseCall records one GeneratePhrase invocation.
type PhraseCall struct {
	Words    []string
	Previous []string
	Focus    string
}

// FakeGenerator is an in-memory content generator. Unknown headwords get a
// synthetic record; phrases are handed out in order and an exhausted list
// yields the empty "no meaningful phrase" answer.
type FakeGenerator struct {
	mu          sync.Mutex
	Words       map[string]deck.Word
	Phrases     []deck.GeneratedPhrase
	Err         error
	APIKey      string
	RequireKey  bool
	WordCalls   []string
	PhraseCalls []PhraseCall
}

// NewFakeGenerator returns a generator that requires no credential.
func NewFakeGenerator() *FakeGenerator {
	return &FakeGenerator{Words: map[string]deck.Word{}}
}

// Factory returns a store.GeneratorFactory that records the key and hands
// back f.
func (f *FakeGenerator) Factory() store.GeneratorFactory {
	return func(apiKey string) store.Generator {
		f.mu.Lock()
		f.APIKey = apiKey
		f.mu.Unlock()
		return f
	}
}

// Key returns the last API key the factory received.
func (f *FakeGenerator) Key() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.APIKey
}

func (f *FakeGenerator) FetchWordData(_ context.Context, headword string) (deck.Word, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.WordCalls = append(f.WordCalls, headword)
	if err := f.check(); err != nil {
		return deck.Word{}, err
	}
	if w, ok := f.Words[headword]; ok {
		return w.Clone(), nil
	}
	return deck.Word{
		Pinyin:       "pīn",
		Tone:         "1",
		Translations: []string{fmt.Sprintf("  meaning of %s ", headword)},
		Comment:      "generated",
		Level:        deck.LevelUnset,
	}, nil
}

func (f *FakeGenerator) GeneratePhrase(_ context.Context, words, previous []string, focus string) (deck.GeneratedPhrase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.PhraseCalls = append(f.PhraseCalls, PhraseCall{
		Words:    slices.Clone(words),
		Previous: slices.Clone(previous),
		Focus:    focus,
	})
	if err := f.check(); err != nil {
		return deck.GeneratedPhrase{}, err
	}
	if len(f.Phrases) == 0 {
		return deck.GeneratedPhrase{}, nil
	}
	next := f.Phrases[0]
	f.Phrases = f.Phrases[1:]
	return next, nil
}

func (f *FakeGenerator) check() error {
	if f.Err != nil {
		return f.Err
	}
	if f.RequireKey && f.APIKey == "" {
		return services.Wrap(services.ErrAuthRequired, "fake", "generate", "api key is required", nil)
	}
	return nil
}
