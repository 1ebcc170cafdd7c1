package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const snippetLimit = 160

// DecodeObject unmarshals the JSON object in content into target. Models
// occasionally wrap the object in a ```json fence or a sentence of prose, so
// those wrappers are peeled off when the raw content does not parse.
func DecodeObject(content string, target any) error {
	raw := strings.TrimSpace(content)
	if raw == "" {
		return errors.New("empty payload")
	}

	var firstErr error
	for _, candidate := range objectCandidates(raw) {
		err := json.Unmarshal([]byte(candidate), target)
		if err == nil {
			return nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return fmt.Errorf("%w (payload snippet: %s)", firstErr, snippet(raw))
}

// objectCandidates lists raw, then raw without a code fence, then the
// outermost {...} span, skipping duplicates.
func objectCandidates(raw string) []string {
	out := []string{raw}
	add := func(s string) {
		if s != "" && s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	unfenced := unfence(raw)
	add(unfenced)
	start := strings.IndexByte(unfenced, '{')
	end := strings.LastIndexByte(unfenced, '}')
	if start >= 0 && end > start {
		add(unfenced[start : end+1])
	}
	return out
}

func unfence(s string) string {
	body, ok := strings.CutPrefix(s, "```")
	if !ok {
		return s
	}
	if tag, rest, found := strings.Cut(body, "\n"); found && !strings.ContainsAny(tag, "{}") {
		body = rest
	}
	body, _, _ = strings.Cut(body, "```")
	return strings.TrimSpace(body)
}

// snippet collapses whitespace in s and caps it at snippetLimit runes for
// error messages.
func snippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "<empty>"
	}
	if utf8.RuneCountInString(s) <= snippetLimit {
		return s
	}
	return string([]rune(s)[:snippetLimit]) + "..."
}

// splitList turns "a, b,c" into trimmed non-empty entries.
func splitList(value string) []string {
	out := make([]string, 0, strings.Count(value, ",")+1)
	for part := range strings.SplitSeq(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
