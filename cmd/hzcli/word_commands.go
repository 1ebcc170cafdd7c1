package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hzcli/internal/deck"
	"hzcli/internal/store"
)

func newWordCommand(ctx *commandContext) *cobra.Command {
	wordCmd := &cobra.Command{
		Use:     "word",
		Aliases: []string{"words", "w"},
		Short:   "Manage the words of a deck",
	}

	wordCmd.AddCommand(newWordListCommand(ctx))
	wordCmd.AddCommand(newWordCountCommand(ctx))
	wordCmd.AddCommand(newWordShowCommand(ctx))
	wordCmd.AddCommand(newWordAddCommand(ctx))
	wordCmd.AddCommand(newWordCopyCommand(ctx))
	wordCmd.AddCommand(newWordRemoveCommand(ctx))
	wordCmd.AddCommand(newWordResetCommand(ctx))
	wordCmd.AddCommand(newWordCommentCommand(ctx))
	wordCmd.AddCommand(newWordSetLevelCommand(ctx))
	wordCmd.AddCommand(newWordLevelCommand(ctx, "level-up", "up", "Increase the level of a word (max 10)", (*store.Store).LevelUp))
	wordCmd.AddCommand(newWordLevelCommand(ctx, "level-down", "down", "Decrease the level of a word (min 0)", (*store.Store).LevelDown))
	wordCmd.AddCommand(newWordLevelCommand(ctx, "unset-level", "ul", "Clear the level of a word", (*store.Store).UnsetLevel))
	wordCmd.AddCommand(newWordTestCommand(ctx))

	return wordCmd
}

// levelFilterFlag parses an optional --level value; empty selects every word.
func levelFilterFlag(value string) (deck.LevelFilter, error) {
	if strings.TrimSpace(value) == "" {
		return deck.AnyLevel(), nil
	}
	level, err := deck.ParseLevel(value)
	if err != nil {
		return deck.LevelFilter{}, err
	}
	return deck.ExactLevel(level), nil
}

func newWordListCommand(ctx *commandContext) *cobra.Command {
	var deckName string
	var level string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the words of a deck",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := levelFilterFlag(level)
			if err != nil {
				return err
			}
			return ctx.withStore(cmd, func(s *store.Store) error {
				words, err := s.ListWords(deckName, filter)
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), words)
				}
				out := cmd.OutOrStdout()
				if len(words) == 0 {
					fmt.Fprintf(out, "No words available in deck %q.\n", deckName)
					return nil
				}
				fmt.Fprintln(out, renderWords(words))
				return nil
			})
		},
	}

	deckFlag(cmd, &deckName, "Deck to list words from")
	cmd.Flags().StringVarP(&level, "level", "l", "", "Only words at this level (0-10, -1 for unset)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newWordCountCommand(ctx *commandContext) *cobra.Command {
	var deckName string
	var level string

	cmd := &cobra.Command{
		Use:     "count",
		Aliases: []string{"c"},
		Short:   "Count the words of a deck",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := levelFilterFlag(level)
			if err != nil {
				return err
			}
			return ctx.withStore(cmd, func(s *store.Store) error {
				n, err := s.CountWords(deckName, filter)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			})
		},
	}

	deckFlag(cmd, &deckName, "Deck to count words in")
	cmd.Flags().StringVarP(&level, "level", "l", "", "Only words at this level (0-10, -1 for unset)")
	return cmd
}

func newWordShowCommand(ctx *commandContext) *cobra.Command {
	var deckName string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <word>",
		Short: "Show every field of a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(s *store.Store) error {
				w, err := s.GetWord(deckName, args[0])
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), map[string]deck.Word{args[0]: w})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderWordDetail(args[0], w))
				return nil
			})
		},
	}

	deckFlag(cmd, &deckName, "Deck the word belongs to")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newWordAddCommand(ctx *commandContext) *cobra.Command {
	var deckName string
	var comment string
	var level string

	cmd := &cobra.Command{
		Use:     "add <word>",
		Aliases: []string{"a"},
		Short:   "Add a word, generating its pinyin, translations and example",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := deck.ParseLevel(level)
			if err != nil {
				return err
			}
			headword := strings.TrimSpace(args[0])
			return ctx.withStore(cmd, func(s *store.Store) error {
				w, err := s.AddWord(cmd.Context(), deckName, headword, comment, parsed)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderWords(map[string]deck.Word{headword: w}))
				return nil
			})
		},
	}

	deckFlag(cmd, &deckName, "Deck to add the word to")
	cmd.Flags().StringVarP(&comment, "comment", "c", "", "Comment about the word")
	cmd.Flags().StringVarP(&level, "level", "l", "-1", "Level of the word (0-10, -1 to leave unset)")
	return cmd
}

func newWordCopyCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "copy <word> <source> <dest>",
		Aliases: []string{"cp"},
		Short:   "Copy a word from one deck to another",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			headword, source, dest := args[0], args[1], args[2]
			return ctx.withStore(cmd, func(s *store.Store) error {
				w, err := s.CopyWord(source, dest, headword, force)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderWords(map[string]deck.Word{headword: w}))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite the word if the destination already has it")
	return cmd
}

func newWordRemoveCommand(ctx *commandContext) *cobra.Command {
	var deckName string

	cmd := &cobra.Command{
		Use:     "remove <word>",
		Aliases: []string{"rm"},
		Short:   "Remove a word from a deck",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(s *store.Store) error {
				if err := s.RemoveWord(deckName, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Word %q removed from deck %q.\n", args[0], deckName)
				return nil
			})
		},
	}

	deckFlag(cmd, &deckName, "Deck to remove the word from")
	return cmd
}

func newWordResetCommand(ctx *commandContext) *cobra.Command {
	var deckName string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Remove every word of a deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(s *store.Store) error {
				n, err := s.ResetWords(deckName)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d word(s) from deck %q.\n", n, deckName)
				return nil
			})
		},
	}

	deckFlag(cmd, &deckName, "Deck to reset")
	return cmd
}

func newWordCommentCommand(ctx *commandContext) *cobra.Command {
	var deckName string

	cmd := &cobra.Command{
		Use:   "comment <word> <comment>",
		Short: "Set or change the comment of a word",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(s *store.Store) error {
				w, err := s.SetWordComment(deckName, args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderWords(map[string]deck.Word{args[0]: w}))
				return nil
			})
		},
	}

	deckFlag(cmd, &deckName, "Deck the word belongs to")
	return cmd
}

func newWordSetLevelCommand(ctx *commandContext) *cobra.Command {
	var deckName string

	cmd := &cobra.Command{
		Use:     "set-level [flags] <word> <level>",
		Aliases: []string{"sl"},
		Short:   "Set the level of a word (0-10, -1 to unset)",
		Example: "  hzcli word set-level 好 3\n  hzcli word set-level -d hsk1 好 -1",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := deck.ParseLevel(args[1])
			if err != nil {
				return err
			}
			return ctx.withStore(cmd, func(s *store.Store) error {
				w, err := s.SetLevel(deckName, args[0], level)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderWords(map[string]deck.Word{args[0]: w}))
				return nil
			})
		},
	}

	deckFlag(cmd, &deckName, "Deck the word belongs to")
	// Flags must precede <word> so a negative level stays positional.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func newWordLevelCommand(ctx *commandContext, use, alias, short string, op func(*store.Store, string, string) (deck.Word, error)) *cobra.Command {
	var deckName string

	cmd := &cobra.Command{
		Use:     use + " <word>",
		Aliases: []string{alias},
		Short:   short,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(s *store.Store) error {
				w, err := op(s, deckName, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderWords(map[string]deck.Word{args[0]: w}))
				return nil
			})
		},
	}

	deckFlag(cmd, &deckName, "Deck the word belongs to")
	return cmd
}
