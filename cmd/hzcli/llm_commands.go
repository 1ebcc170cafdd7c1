package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hzcli/internal/store"
)

func newLLMCommand(ctx *commandContext) *cobra.Command {
	llmCmd := &cobra.Command{
		Use:   "llm",
		Short: "Manage the content generator",
	}

	llmCmd.AddCommand(newLLMSetKeyCommand(ctx))
	llmCmd.AddCommand(newLLMStatusCommand(ctx))

	return llmCmd
}

func newLLMSetKeyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "set-key <api-key>",
		Aliases: []string{"sk"},
		Short:   "Store the API key used for word and phrase generation",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(s *store.Store) error {
				if err := s.SetAPIKey(args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "LLM API key set successfully.")
				return nil
			})
		},
	}
}

func newLLMStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the content generator settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return ctx.withStore(cmd, func(s *store.Store) error {
				rows := [][]string{
					{"Model", cfg.LLM.Model},
					{"Base URL", cfg.LLM.BaseURL},
					{"Timeout", fmt.Sprintf("%ds", cfg.LLM.TimeoutSeconds)},
					{"API key", yesNo(s.HasAPIKey())},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Setting", "Value"}, rows, nil))
				return nil
			})
		},
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
