package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains data directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
}

// LLM contains content generator connection settings.
type LLM struct {
	APIKey         string  `toml:"api_key"`
	BaseURL        string  `toml:"base_url"`
	Model          string  `toml:"model"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	Temperature    float64 `toml:"temperature"`
	MaxTokens      int     `toml:"max_tokens"`
}

// Quiz contains defaults for `word test`.
type Quiz struct {
	DefaultCount int    `toml:"default_count"`
	DefaultKind  string `toml:"default_kind"`
}

// Store contains deck store behaviour.
type Store struct {
	SeedStarterDecks bool `toml:"seed_starter_decks"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format  string `toml:"format"`
	Level   string `toml:"level"`
	Console bool   `toml:"console"`
}

// Config encapsulates all configuration values for hzcli.
//
// Configuration sections:
//   - Paths: the data directory holding store metadata, decks, and logs
//   - LLM: content generator endpoint, model, and credential
//   - Quiz: default question count and kind
//   - Store: starter deck seeding
//   - Logging: log format, level, and stderr mirroring
type Config struct {
	Paths   Paths   `toml:"paths"`
	LLM     LLM     `toml:"llm"`
	Quiz    Quiz    `toml:"quiz"`
	Store   Store   `toml:"store"`
	Logging Logging `toml:"logging"`
}

// StorePath returns the store metadata file.
func (c *Config) StorePath() string {
	return filepath.Join(c.Paths.DataDir, "store.json")
}

// DecksDir returns the directory holding one JSON file per deck.
func (c *Config) DecksDir() string {
	return filepath.Join(c.Paths.DataDir, "decks")
}

// LogDir returns the directory receiving hzcli.log.
func (c *Config) LogDir() string {
	return filepath.Join(c.Paths.DataDir, "logs")
}

// EnsureDirectories creates the data, deck, and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.DecksDir(), c.LogDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}
