package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hzcli/internal/deck"
	"hzcli/internal/services"
)

func TestGeneratePhrase(t *testing.T) {
	s, gen := openStore(t)
	gen.Phrases = []deck.GeneratedPhrase{
		{Text: " 我爱你 ", Pinyin: "wǒ ài nǐ", Translation: "I love you", Note: " "},
	}

	text, phrase, err := s.GeneratePhrase(t.Context(), "default", []string{"我", "爱", "你"}, []string{"你好"}, "爱")
	require.NoError(t, err)
	require.Equal(t, "我爱你", text)
	require.Equal(t, deck.Phrase{Pinyin: "wǒ ài nǐ", Translation: "I love you"}, phrase)

	require.Len(t, gen.PhraseCalls, 1)
	require.Equal(t, []string{"我", "爱", "你"}, gen.PhraseCalls[0].Words)
	require.Equal(t, []string{"你好"}, gen.PhraseCalls[0].Previous)
	require.Equal(t, "爱", gen.PhraseCalls[0].Focus)
}

func TestGeneratePhraseErrors(t *testing.T) {
	s, gen := openStore(t)

	_, _, err := s.GeneratePhrase(t.Context(), "default", nil, nil, "")
	require.ErrorIs(t, err, services.ErrArgument)
	require.Empty(t, gen.PhraseCalls)

	_, _, err = s.GeneratePhrase(t.Context(), "missing", []string{"我"}, nil, "")
	require.ErrorIs(t, err, services.ErrNotFound)

	_, _, err = s.GeneratePhrase(t.Context(), "default", []string{"我"}, nil, "")
	require.ErrorIs(t, err, services.ErrNoResult)

	gen.Phrases = []deck.GeneratedPhrase{{Text: "你好"}}
	_, _, err = s.GeneratePhrase(t.Context(), "default", []string{"你", "好"}, []string{"你好"}, "")
	require.ErrorIs(t, err, services.ErrNoResult)
}

func TestSavePhrase(t *testing.T) {
	s, _ := openStore(t)

	require.ErrorIs(t, s.SavePhrase("default", " ", deck.Phrase{}), services.ErrArgument)
	require.ErrorIs(t, s.SavePhrase("missing", "你好", deck.Phrase{}), services.ErrNotFound)

	require.NoError(t, s.SavePhrase("default", "你好", deck.Phrase{Pinyin: "nǐ hǎo", Translation: "hello"}))
	phrases, err := s.ListPhrases("default")
	require.NoError(t, err)
	require.Equal(t, map[string]deck.Phrase{"你好": {Pinyin: "nǐ hǎo", Translation: "hello"}}, phrases)
}
