package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"hzcli/internal/deck"
	"hzcli/internal/store"
)

func newDeckCommand(ctx *commandContext) *cobra.Command {
	deckCmd := &cobra.Command{
		Use:     "deck",
		Aliases: []string{"decks", "d"},
		Short:   "Manage decks",
	}

	deckCmd.AddCommand(newDeckListCommand(ctx))
	deckCmd.AddCommand(newDeckAddCommand(ctx))
	deckCmd.AddCommand(newDeckRemoveCommand(ctx))
	deckCmd.AddCommand(newDeckMergeCommand(ctx))
	deckCmd.AddCommand(newDeckCloneCommand(ctx))
	deckCmd.AddCommand(newDeckExportCommand(ctx))
	deckCmd.AddCommand(newDeckImportCommand(ctx))

	return deckCmd
}

func newDeckListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all decks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(s *store.Store) error {
				decks, err := s.ListDecks()
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), decks)
				}
				out := cmd.OutOrStdout()
				if len(decks) == 0 {
					fmt.Fprintln(out, "No decks available.")
					return nil
				}
				rows := make([][]string, 0, len(decks))
				for _, d := range decks {
					rows = append(rows, []string{d.Name, dash(d.Description), strconv.Itoa(d.Words), strconv.Itoa(d.Phrases)})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Name", "Description", "Words", "Phrases"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newDeckAddCommand(ctx *commandContext) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:     "add <name>",
		Aliases: []string{"a"},
		Short:   "Add a new empty deck",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(s *store.Store) error {
				if err := s.AddDeck(args[0], description); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deck %q added.\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "D", "", "Description of the deck")
	return cmd
}

func newDeckRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a deck and its file",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(s *store.Store) error {
				if err := s.RemoveDeck(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deck %q removed.\n", args[0])
				return nil
			})
		},
	}
}

func newDeckMergeCommand(ctx *commandContext) *cobra.Command {
	var deleteSource bool

	cmd := &cobra.Command{
		Use:     "merge <source> <dest>",
		Aliases: []string{"m"},
		Short:   "Merge the source deck into the destination deck",
		Long:    "Copies every word and phrase of <source> that <dest> does not already have. Existing entries in <dest> are never overwritten.",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, dest := args[0], args[1]
			return ctx.withStore(cmd, func(s *store.Store) error {
				added, err := s.MergeDecks(dest, source, deleteSource)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Merged %d word(s) from %q into %q.\n", len(added), source, dest)
				if deleteSource {
					fmt.Fprintf(out, "Deck %q removed.\n", source)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&deleteSource, "delete-source", false, "Remove the source deck after merging")
	return cmd
}

func newDeckCloneCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "clone <source> <dest>",
		Aliases: []string{"c"},
		Short:   "Clone the source deck into a new deck",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, dest := args[0], args[1]
			return ctx.withStore(cmd, func(s *store.Store) error {
				if err := s.CloneDeck(dest, source); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deck %q cloned to %q.\n", source, dest)
				return nil
			})
		},
	}
}

func newDeckExportCommand(ctx *commandContext) *cobra.Command {
	var dir string
	var force bool

	cmd := &cobra.Command{
		Use:     "export [name]",
		Aliases: []string{"e"},
		Short:   "Export a deck to <name>.json",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := store.DefaultDeck
			if len(args) == 1 {
				name = args[0]
			}
			target := strings.TrimSpace(dir)
			if target == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("determine working directory: %w", err)
				}
				target = wd
			}
			return ctx.withStore(cmd, func(s *store.Store) error {
				path, err := s.ExportDeck(name, target, force)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deck %q exported to %s.\n", name, path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&dir, "output-dir", "o", "", "Directory for the exported file (default: current directory)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite the file if it already exists")
	return cmd
}

func newDeckImportCommand(ctx *commandContext) *cobra.Command {
	var merge bool
	var replace bool

	cmd := &cobra.Command{
		Use:     "import <file.json>",
		Aliases: []string{"i"},
		Short:   "Import a deck from a JSON file named after the deck",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, incoming, err := deck.ReadInterchange(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(cmd, func(s *store.Store) error {
				result, err := s.ImportDeck(name, incoming, merge, replace)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				switch result.Mode {
				case store.ImportMerged:
					fmt.Fprintf(out, "Merged %d word(s) from %s into deck %q.\n", len(result.Added), args[0], name)
				case store.ImportReplaced:
					fmt.Fprintf(out, "Deck %q replaced from %s.\n", name, args[0])
				default:
					fmt.Fprintf(out, "Deck %q imported from %s.\n", name, args[0])
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&merge, "merge", "m", false, "Merge into the existing deck of the same name")
	cmd.Flags().BoolVarP(&replace, "replace", "r", false, "Replace the existing deck of the same name")
	return cmd
}
