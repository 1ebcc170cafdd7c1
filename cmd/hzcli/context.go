package main

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"hzcli/internal/config"
	"hzcli/internal/logging"
	"hzcli/internal/services/llm"
	"hzcli/internal/store"
)

// cliDeps overrides the collaborators the commands would otherwise build from
// configuration.
type cliDeps struct {
	newGenerator store.GeneratorFactory
	stdin        io.Reader
	rand         *rand.Rand
}

type commandContext struct {
	configFlag *string
	deps       cliDeps

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, deps cliDeps) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		deps:       deps,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// withStore opens the store for the duration of fn.
func (c *commandContext) withStore(cmd *cobra.Command, fn func(*store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}
	logger = logging.WithContext(cmd.Context(), logger)

	s, err := store.Open(store.Options{
		DataDir:        cfg.Paths.DataDir,
		Logger:         logger,
		NewGenerator:   c.generatorFactory(cfg, logger),
		FallbackAPIKey: cfg.LLM.APIKey,
		SeedStarters:   cfg.Store.SeedStarterDecks,
	})
	if err != nil {
		return err
	}
	return closeStore(logger, s, fn(s))
}

// closeStore releases s and returns err, or the close error when err is nil.
// A close failure after a failed command is logged so err stays the one shown.
func closeStore(logger *slog.Logger, s io.Closer, err error) error {
	closeErr := s.Close()
	if closeErr == nil {
		return err
	}
	if err == nil {
		return closeErr
	}
	logging.WarnWithContext(logger, "failed to release store lock", "store_close_failed",
		logging.Error(closeErr),
		logging.String(logging.FieldErrorHint, "remove hzcli.lock if no other hzcli process is running"),
		logging.String(logging.FieldImpact, "the next command may report the store as locked"))
	return err
}

func (c *commandContext) generatorFactory(cfg *config.Config, logger *slog.Logger) store.GeneratorFactory {
	if c.deps.newGenerator != nil {
		return c.deps.newGenerator
	}
	return func(apiKey string) store.Generator {
		return llm.NewClient(llm.Config{
			APIKey:         apiKey,
			BaseURL:        cfg.LLM.BaseURL,
			Model:          cfg.LLM.Model,
			TimeoutSeconds: cfg.LLM.TimeoutSeconds,
			Temperature:    cfg.LLM.Temperature,
			MaxTokens:      cfg.LLM.MaxTokens,
		}, llm.WithLogger(logger))
	}
}

// skipConfigLoad is the annotation marking commands that load (or write)
// configuration themselves.
const skipConfigLoad = "skipConfigLoad"

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipConfigLoad] == "true" {
			return true
		}
	}
	return false
}

// deckFlag registers the shared --deck/-d flag.
func deckFlag(cmd *cobra.Command, target *string, usage string) {
	cmd.Flags().StringVarP(target, "deck", "d", store.DefaultDeck, usage)
}
