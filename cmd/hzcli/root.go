package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"hzcli/internal/logging"
)

func newRootCommand() *cobra.Command {
	return newRootCommandWith(cliDeps{})
}

// newRootCommandWith builds the command tree around deps so tests can inject
// a generator, stdin, and a seeded random source.
func newRootCommandWith(deps cliDeps) *cobra.Command {
	var configFlag string
	ctx := newCommandContext(&configFlag, deps)

	root := &cobra.Command{
		Use:           "hzcli",
		Short:         "Chinese vocabulary flashcards",
		Long:          "hzcli keeps decks of Chinese words, fills in pinyin and translations through an LLM, and quizzes you on them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Every log line of one invocation shares this id.
			cmd.SetContext(logging.WithCorrelationID(cmd.Context(), uuid.NewString()))
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
	}
	root.PersistentFlags().StringVarP(&configFlag, "config", "C", "", "Configuration file path")

	root.AddCommand(
		newDeckCommand(ctx),
		newWordCommand(ctx),
		newPhraseCommand(ctx),
		newLLMCommand(ctx),
		newConfigCommand(ctx),
	)
	return root
}
