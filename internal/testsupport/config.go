package testsupport

import (
	"path/filepath"
	"testing"

	"hzcli/internal/config"
)

// ConfigOption adjusts a test configuration after defaults are applied.
type ConfigOption func(*config.Config)

// NewConfig returns a config whose data directory lives under t.TempDir().
// Starter decks are not seeded, so a fresh store holds only the default deck,
// and the API key is "test-key".
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(t.TempDir(), "data")
	cfg.Store.SeedStarterDecks = false
	cfg.LLM.APIKey = "test-key"
	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithAPIKey replaces the generator key; "" simulates an unconfigured key.
func WithAPIKey(key string) ConfigOption {
	return func(c *config.Config) { c.LLM.APIKey = key }
}

// WithStarterDecks turns starter deck seeding back on.
func WithStarterDecks() ConfigOption {
	return func(c *config.Config) { c.Store.SeedStarterDecks = true }
}
