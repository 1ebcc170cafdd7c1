package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"hzcli/internal/services"
)

type capturedRequest struct {
	Model          string  `json:"model"`
	MaxTokens      int     `json:"max_tokens"`
	Temperature    float64 `json:"temperature"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func completionServer(t *testing.T, content string, captured *capturedRequest) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", got)
		}
		if captured != nil {
			if err := json.NewDecoder(r.Body).Decode(captured); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		payload := map[string]any{
			"id":     "cmpl-1",
			"object": "chat.completion",
			"model":  "demo-model",
			"choices": []any{
				map[string]any{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]any{
						"role":    "assistant",
						"content": content,
					},
				},
			},
			"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30},
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func errorServer(t *testing.T, status int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error":{"message":"nope","type":"invalid_request_error"}}`))
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func testClient(server *httptest.Server) *Client {
	return NewClient(Config{APIKey: "test-key", BaseURL: server.URL + "/v1/", Model: "demo-model", MaxTokens: 120, Temperature: 0.5})
}

func TestFetchWordData(t *testing.T) {
	content := `{"definition":"good, well , fine","note":"","pinyin":"hǎo","tone":"3","sentence":"你好！","sentencePinyin":"nǐ hǎo!","sentenceTranslation":"Hello!","sentenceDefinition":""}`
	var captured capturedRequest
	server, calls := completionServer(t, content, &captured)

	word, err := testClient(server).FetchWordData(context.Background(), " 好 ")
	if err != nil {
		t.Fatalf("FetchWordData returned error: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one request, got %d", calls.Load())
	}
	if word.Pinyin != "hǎo" || word.Tone != "3" {
		t.Fatalf("unexpected pinyin/tone %q/%q", word.Pinyin, word.Tone)
	}
	if got := strings.Join(word.Translations, "|"); got != "good|well|fine" {
		t.Fatalf("unexpected translations %q", got)
	}
	if word.Sentence != "你好！" || word.SentenceTranslation != "Hello!" {
		t.Fatalf("unexpected sentence fields %+v", word)
	}
	if word.Level != -1 || word.Comment != "" || word.CreatedAt != "" {
		t.Fatalf("generator must not fill comment, level or createdAt: %+v", word)
	}

	if captured.Model != "demo-model" || captured.MaxTokens != 120 {
		t.Fatalf("unexpected request model/max_tokens %q/%d", captured.Model, captured.MaxTokens)
	}
	if captured.ResponseFormat.Type != "json_object" {
		t.Fatalf("expected json_object response format, got %q", captured.ResponseFormat.Type)
	}
	if len(captured.Messages) != 1 || !strings.Contains(captured.Messages[0].Content, `"好"`) {
		t.Fatalf("expected prompt to quote the trimmed headword, got %+v", captured.Messages)
	}
}

func TestFetchWordDataCodeFence(t *testing.T) {
	server, _ := completionServer(t, "```json\n{\"definition\":\"big\",\"pinyin\":\"dà\",\"tone\":\"4\"}\n```", nil)
	word, err := testClient(server).FetchWordData(context.Background(), "大")
	if err != nil {
		t.Fatalf("FetchWordData returned error: %v", err)
	}
	if word.Pinyin != "dà" || len(word.Translations) != 1 || word.Translations[0] != "big" {
		t.Fatalf("unexpected word %+v", word)
	}
}

func TestFetchWordDataNormalizesUnknownTone(t *testing.T) {
	server, _ := completionServer(t, `{"definition":"question particle","pinyin":"ma","tone":"neutral"}`, nil)
	word, err := testClient(server).FetchWordData(context.Background(), "吗")
	if err != nil {
		t.Fatalf("FetchWordData returned error: %v", err)
	}
	if word.Tone != "-" {
		t.Fatalf("expected neutral tone marker, got %q", word.Tone)
	}
}

func TestFetchWordDataMalformed(t *testing.T) {
	for name, content := range map[string]string{
		"prose":  "I am not sure what you mean.",
		"hollow": `{"note":"nothing useful"}`,
	} {
		t.Run(name, func(t *testing.T) {
			server, _ := completionServer(t, content, nil)
			_, err := testClient(server).FetchWordData(context.Background(), "好")
			if !errors.Is(err, services.ErrMalformedResponse) {
				t.Fatalf("expected malformed response, got %v", err)
			}
		})
	}
}

func TestFetchWordDataRequiresKey(t *testing.T) {
	server, calls := completionServer(t, `{}`, nil)
	client := NewClient(Config{BaseURL: server.URL + "/v1"})
	_, err := client.FetchWordData(context.Background(), "好")
	if !errors.Is(err, services.ErrAuthRequired) {
		t.Fatalf("expected auth required, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no request without a key, got %d", calls.Load())
	}
}

func TestFetchWordDataRequiresHeadword(t *testing.T) {
	server, calls := completionServer(t, `{}`, nil)
	_, err := testClient(server).FetchWordData(context.Background(), "  ")
	if !errors.Is(err, services.ErrArgument) {
		t.Fatalf("expected argument error, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no request for empty headword, got %d", calls.Load())
	}
}

func TestHTTPErrorsAreClassifiedAndNotRetried(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, services.ErrAuthRequired},
		{http.StatusForbidden, services.ErrAuthRequired},
		{http.StatusTooManyRequests, services.ErrUnavailable},
		{http.StatusInternalServerError, services.ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			server, calls := errorServer(t, tt.status)
			_, err := testClient(server).FetchWordData(context.Background(), "好")
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if calls.Load() != 1 {
				t.Fatalf("expected exactly one attempt, got %d", calls.Load())
			}
		})
	}
}

func TestGeneratePhrase(t *testing.T) {
	content := `{"phrase":"我爱你","pinyin":"wǒ ài nǐ","translation":"I love you","meaningful":true,"note":""}`
	var captured capturedRequest
	server, _ := completionServer(t, content, &captured)

	phrase, err := testClient(server).GeneratePhrase(context.Background(), []string{"我", "爱", "你"}, []string{"你好"}, "爱")
	if err != nil {
		t.Fatalf("GeneratePhrase returned error: %v", err)
	}
	if phrase.Text != "我爱你" || phrase.Pinyin != "wǒ ài nǐ" || phrase.Translation != "I love you" {
		t.Fatalf("unexpected phrase %+v", phrase)
	}
	prompt := captured.Messages[0].Content
	for _, fragment := range []string{"我, 爱, 你", `"爱"`, "你好"} {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("expected %q in prompt %q", fragment, prompt)
		}
	}
}

func TestGeneratePhraseNotMeaningful(t *testing.T) {
	server, _ := completionServer(t, `{"phrase":"大小","pinyin":"dà xiǎo","translation":"size","meaningful":false,"note":""}`, nil)
	phrase, err := testClient(server).GeneratePhrase(context.Background(), []string{"大", "小"}, nil, "")
	if err != nil {
		t.Fatalf("GeneratePhrase returned error: %v", err)
	}
	if phrase.Text != "" || phrase.Pinyin != "" {
		t.Fatalf("expected empty phrase, got %+v", phrase)
	}
}

func TestGeneratePhraseRequiresWords(t *testing.T) {
	server, calls := completionServer(t, `{}`, nil)
	_, err := testClient(server).GeneratePhrase(context.Background(), nil, nil, "")
	if !errors.Is(err, services.ErrArgument) {
		t.Fatalf("expected argument error, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no request, got %d", calls.Load())
	}
}

func TestDecodeObject(t *testing.T) {
	var target struct {
		OK bool `json:"ok"`
	}
	for _, content := range []string{
		`{"ok":true}`,
		"```json\n{\"ok\":true}\n```",
		"Sure! Here it is: {\"ok\":true} Hope that helps.",
	} {
		target.OK = false
		if err := DecodeObject(content, &target); err != nil {
			t.Fatalf("DecodeObject(%q) returned error: %v", content, err)
		}
		if !target.OK {
			t.Fatalf("DecodeObject(%q) did not decode", content)
		}
	}
	if err := DecodeObject("   ", &target); err == nil {
		t.Fatal("expected error for empty payload")
	}
	if err := DecodeObject("no json here", &target); err == nil || !strings.Contains(err.Error(), "payload snippet") {
		t.Fatalf("expected snippet in error, got %v", err)
	}
}

func TestSnippetTruncates(t *testing.T) {
	long := strings.Repeat("字", 200)
	got := snippet(long)
	if !strings.HasSuffix(got, "...") || len([]rune(got)) != 163 {
		t.Fatalf("unexpected snippet length %d", len([]rune(got)))
	}
	if snippet(" \n\t") != "<empty>" {
		t.Fatal("expected <empty> placeholder")
	}
}
