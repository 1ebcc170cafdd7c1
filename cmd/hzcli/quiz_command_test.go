package main

import (
	"errors"
	"strings"
	"testing"

	"hzcli/internal/quiz"
	"hzcli/internal/services"
)

func TestWordTestSingleDirection(t *testing.T) {
	env := setupCLITestEnv(t, "test-key")
	env.mustRun(t, "word", "add", "好")
	env.mustRun(t, "word", "add", "大")

	// english-chinese asks for the headword given its translations; the fake
	// generator translates X as "meaning of X".
	stdin := "好\n大\n"
	out, _, err := env.run(t, stdin, "word", "test", "-k", "english-chinese", "-n", "2")
	if err != nil {
		t.Fatalf("word test: %v", err)
	}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if strings.HasPrefix(line, "1.") || strings.HasPrefix(line, "2.") {
			requireContains(t, line, "What are the Chinese characters for meaning of")
		}
	}
	requireContains(t, out, "Total words tested: 2")
	requireContains(t, out, "Total errors:")
	requireContains(t, out, "English → Chinese")
}

func TestWordTestAllCorrect(t *testing.T) {
	env := setupCLITestEnv(t, "test-key")
	env.mustRun(t, "word", "add", "好")

	out, _, err := env.run(t, "好\n", "word", "test", "-k", "english-chinese", "-n", "3")
	if err != nil {
		t.Fatalf("word test: %v", err)
	}
	requireContains(t, out, "✓ Correct! 好")
	requireContains(t, out, "No more words available for testing in this deck.")
	requireContains(t, out, "Total words tested: 1")
	requireContains(t, out, "Successfully answered: 1")
	requireContains(t, out, "Total errors: 0")
}

func TestWordTestWrongPinyin(t *testing.T) {
	env := setupCLITestEnv(t, "test-key")
	env.mustRun(t, "word", "add", "好")

	out, _, err := env.run(t, "hao\n", "word", "test", "-k", "chinese-pinyin")
	if err != nil {
		t.Fatalf("word test: %v", err)
	}
	requireContains(t, out, `1. What is the pinyin for "好"?`)
	requireContains(t, out, "✗ Incorrect! The answer is pīn")
	requireContains(t, out, "Total errors: 1")
}

func TestWordTestDoubledVowelPinyin(t *testing.T) {
	env := setupCLITestEnv(t, "test-key")
	env.mustRun(t, "word", "add", "好")

	// "pIIn" is the tone-1 doubled-vowel spelling of "pīn".
	out, _, err := env.run(t, "pIIn\n", "word", "test", "-k", "chinese-pinyin")
	if err != nil {
		t.Fatalf("word test: %v", err)
	}
	requireContains(t, out, "Successfully answered: 1")
}

func TestWordTestEndOfInputStopsEarly(t *testing.T) {
	env := setupCLITestEnv(t, "test-key")
	env.mustRun(t, "word", "add", "好")
	env.mustRun(t, "word", "add", "大")

	out, _, err := env.run(t, "", "word", "test")
	if err != nil {
		t.Fatalf("word test: %v", err)
	}
	requireContains(t, out, "Total words tested: 0")
}

func TestWordTestEmptyDeck(t *testing.T) {
	env := setupCLITestEnv(t, "test-key")
	out := env.mustRun(t, "word", "test")
	requireContains(t, out, `No words available in deck "default".`)
}

func TestWordTestRejectsUnknownKind(t *testing.T) {
	env := setupCLITestEnv(t, "test-key")
	_, _, err := env.run(t, "", "word", "test", "-k", "pinyin-chinese")
	if !errors.Is(err, services.ErrArgument) {
		t.Fatalf("expected argument error, got %v", err)
	}
	for _, name := range quiz.KindNames() {
		requireContains(t, err.Error(), name)
	}
}

func TestQuestionText(t *testing.T) {
	tests := []struct {
		q    quiz.Question
		want string
	}{
		{quiz.Question{Number: 1, Category: quiz.ChineseToPinyin, Subject: "好"}, `1. What is the pinyin for "好"? `},
		{quiz.Question{Number: 2, Category: quiz.ChineseToMeaning, Subject: "好"}, `2. What is the English translation for "好"? `},
		{quiz.Question{Number: 3, Category: quiz.MeaningToChinese, Subject: "good, well"}, "3. What are the Chinese characters for good, well? "},
		{quiz.Question{Number: 4, Category: quiz.MeaningToPinyin, Subject: "good, well"}, "4. What is the pinyin for good, well? "},
	}
	for _, tt := range tests {
		if got := questionText(tt.q); got != tt.want {
			t.Errorf("questionText(%v) = %q, want %q", tt.q.Category, got, tt.want)
		}
	}
}
