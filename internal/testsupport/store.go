package testsupport

import (
	"testing"

	"hzcli/internal/config"
	"hzcli/internal/store"
)

// MustOpenStore opens a store on cfg's data directory backed by gen and
// registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config, gen *FakeGenerator) *store.Store {
	t.Helper()

	opts := store.Options{
		DataDir:        cfg.Paths.DataDir,
		FallbackAPIKey: cfg.LLM.APIKey,
		SeedStarters:   cfg.Store.SeedStarterDecks,
	}
	if gen != nil {
		opts.NewGenerator = gen.Factory()
	}
	s, err := store.Open(opts)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}
