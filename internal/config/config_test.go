package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"hzcli/internal/config"
)

func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("HZCLI_API_KEY", "")
	t.Chdir(t.TempDir())
	return home
}

func TestLoadDefaultConfigExpandsDataDir(t *testing.T) {
	home := isolateEnv(t)
	t.Setenv("OPENAI_API_KEY", "env-key")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(home, ".config", "hzcli", "config.toml"); resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if want := filepath.Join(home, ".hzcli"); cfg.Paths.DataDir != want {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, want)
	}
	if cfg.StorePath() != filepath.Join(home, ".hzcli", "store.json") {
		t.Fatalf("unexpected store path: %q", cfg.StorePath())
	}
	if cfg.DecksDir() != filepath.Join(home, ".hzcli", "decks") {
		t.Fatalf("unexpected decks dir: %q", cfg.DecksDir())
	}
	if cfg.LLM.APIKey != "env-key" {
		t.Fatalf("expected api key from env, got %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.Model != "gpt-4.1-nano" || cfg.LLM.Temperature != 0.7 {
		t.Fatalf("unexpected llm defaults: %+v", cfg.LLM)
	}
	if cfg.Quiz.DefaultCount != 10 || cfg.Quiz.DefaultKind != "mixed" {
		t.Fatalf("unexpected quiz defaults: %+v", cfg.Quiz)
	}
	if !cfg.Store.SeedStarterDecks {
		t.Fatal("expected starter decks seeded by default")
	}
}

func TestLoadWithoutAPIKeyIsNotAnError(t *testing.T) {
	isolateEnv(t)

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LLM.APIKey != "" {
		t.Fatalf("expected empty api key, got %q", cfg.LLM.APIKey)
	}
}

func TestLoadPrefersHzcliKeyOverOpenAIKey(t *testing.T) {
	isolateEnv(t)
	t.Setenv("OPENAI_API_KEY", "openai")
	t.Setenv("HZCLI_API_KEY", " hzcli ")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LLM.APIKey != "hzcli" {
		t.Fatalf("expected HZCLI_API_KEY to win, got %q", cfg.LLM.APIKey)
	}
}

func TestLoadReadsDotenvFromWorkingDirectory(t *testing.T) {
	isolateEnv(t)
	os.Unsetenv("OPENAI_API_KEY")
	os.Unsetenv("HZCLI_API_KEY")
	if err := os.WriteFile(".env", []byte("OPENAI_API_KEY=from-dotenv\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LLM.APIKey != "from-dotenv" {
		t.Fatalf("expected api key from .env, got %q", cfg.LLM.APIKey)
	}
}

func TestLoadCustomFile(t *testing.T) {
	isolateEnv(t)
	t.Setenv("OPENAI_API_KEY", "env-key")
	dataDir := filepath.Join(t.TempDir(), "data")

	payload := map[string]any{
		"paths": map[string]any{"data_dir": dataDir},
		"llm": map[string]any{
			"api_key":     "file-key",
			"base_url":    "http://localhost:8080/v1/",
			"model":       "local-model",
			"temperature": 0.2,
		},
		"quiz":    map[string]any{"default_count": 3, "default_kind": "Chinese-Pinyin"},
		"logging": map[string]any{"format": "JSON", "level": "DEBUG"},
	}
	data, err := toml.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "hzcli.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected %q to be used, got %q (exists=%v)", path, resolved, exists)
	}
	if cfg.Paths.DataDir != dataDir {
		t.Fatalf("unexpected data dir: %q", cfg.Paths.DataDir)
	}
	if cfg.LLM.APIKey != "file-key" {
		t.Fatalf("expected file api key to win over env, got %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.BaseURL != "http://localhost:8080/v1" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.LLM.BaseURL)
	}
	if cfg.LLM.TimeoutSeconds != 30 || cfg.LLM.MaxTokens != 400 {
		t.Fatalf("expected unset llm fields to keep defaults: %+v", cfg.LLM)
	}
	if cfg.Quiz.DefaultKind != "chinese-pinyin" || cfg.Quiz.DefaultCount != 3 {
		t.Fatalf("unexpected quiz section: %+v", cfg.Quiz)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging section: %+v", cfg.Logging)
	}
}

func TestLoadMissingExplicitPathUsesDefaults(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists || resolved != path {
		t.Fatalf("expected absent %q, got %q (exists=%v)", path, resolved, exists)
	}
	if cfg.Quiz.DefaultCount != 10 {
		t.Fatalf("expected default quiz count, got %d", cfg.Quiz.DefaultCount)
	}
}

func TestLoadRejectsMalformedToml(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("[quiz\ndefault_count = "), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"defaults", func(*config.Config) {}, ""},
		{"zero count", func(c *config.Config) { c.Quiz.DefaultCount = 0 }, "quiz.default_count"},
		{"unknown kind", func(c *config.Config) { c.Quiz.DefaultKind = "hanzi-hanzi" }, "quiz.default_kind"},
		{"temperature high", func(c *config.Config) { c.LLM.Temperature = 2.5 }, "llm.temperature"},
		{"temperature negative", func(c *config.Config) { c.LLM.Temperature = -0.1 }, "llm.temperature"},
		{"zero timeout", func(c *config.Config) { c.LLM.TimeoutSeconds = 0 }, "llm.timeout_seconds"},
		{"zero tokens", func(c *config.Config) { c.LLM.MaxTokens = 0 }, "llm.max_tokens"},
		{"bad base url", func(c *config.Config) { c.LLM.BaseURL = "ftp://example" }, "llm.base_url"},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestCreateSampleLoadsCleanly(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.LLM.Model != "gpt-4.1-nano" {
		t.Fatalf("unexpected sample model: %q", cfg.LLM.Model)
	}
}

func TestEnsureDirectories(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(t.TempDir(), "data")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.DecksDir(), cfg.LogDir()} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q: %v", dir, err)
		}
	}
}
