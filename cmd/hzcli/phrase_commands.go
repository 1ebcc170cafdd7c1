package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"hzcli/internal/deck"
	"hzcli/internal/services"
	"hzcli/internal/store"
)

func newPhraseCommand(ctx *commandContext) *cobra.Command {
	phraseCmd := &cobra.Command{
		Use:     "phrase",
		Aliases: []string{"phrases", "p"},
		Short:   "Generate and list phrases",
	}

	phraseCmd.AddCommand(newPhraseGenerateCommand(ctx))
	phraseCmd.AddCommand(newPhraseListCommand(ctx))

	return phraseCmd
}

func newPhraseGenerateCommand(ctx *commandContext) *cobra.Command {
	var deckName string
	var focus string
	var count int
	var save bool

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate phrases from the words of a deck",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				count = 1
			}
			return ctx.withStore(cmd, func(s *store.Store) error {
				words, err := s.ListWords(deckName, deck.AnyLevel())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(words) == 0 {
					fmt.Fprintf(out, "No words available in deck %q.\n", deckName)
					return nil
				}
				candidates := deck.SortedHeadwords(words)

				var previous []string
				for i := range count {
					if i > 0 {
						fmt.Fprintln(out, "---")
					}
					text, phrase, err := s.GeneratePhrase(cmd.Context(), deckName, candidates, previous, focus)
					if errors.Is(err, services.ErrNoResult) {
						fmt.Fprintln(out, "No meaningful phrase could be generated with the provided words.")
						return nil
					}
					if err != nil {
						return err
					}
					previous = append(previous, text)

					fmt.Fprintf(out, "Phrase: %s\n", text)
					fmt.Fprintf(out, "Pinyin: %s\n", dash(phrase.Pinyin))
					fmt.Fprintf(out, "Translation: %s\n", dash(phrase.Translation))
					fmt.Fprintf(out, "Note: %s\n", dash(phrase.Note))
					if save {
						if err := s.SavePhrase(deckName, text, phrase); err != nil {
							return err
						}
						fmt.Fprintf(out, "Saved to deck %q.\n", deckName)
					}
				}
				return nil
			})
		},
	}

	deckFlag(cmd, &deckName, "Deck to draw words from")
	cmd.Flags().StringVarP(&focus, "word", "w", "", "Word the phrase must include")
	cmd.Flags().IntVarP(&count, "number", "n", 1, "Number of phrases to generate")
	cmd.Flags().BoolVar(&save, "save", false, "Store each generated phrase in the deck")
	return cmd
}

func newPhraseListCommand(ctx *commandContext) *cobra.Command {
	var deckName string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the saved phrases of a deck",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(s *store.Store) error {
				phrases, err := s.ListPhrases(deckName)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(phrases) == 0 {
					fmt.Fprintf(out, "No phrases saved in deck %q.\n", deckName)
					return nil
				}
				rows := make([][]string, 0, len(phrases))
				for _, text := range sortedKeys(phrases) {
					p := phrases[text]
					rows = append(rows, []string{text, dash(p.Pinyin), dash(p.Translation), dash(p.Note)})
				}
				fmt.Fprintln(out, renderTable([]string{"Phrase", "Pinyin", "Translation", "Note"}, rows, nil))
				return nil
			})
		},
	}

	deckFlag(cmd, &deckName, "Deck to list phrases from")
	return cmd
}
