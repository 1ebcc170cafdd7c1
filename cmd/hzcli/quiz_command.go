package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"hzcli/internal/deck"
	"hzcli/internal/logging"
	"hzcli/internal/quiz"
	"hzcli/internal/store"
)

func newWordTestCommand(ctx *commandContext) *cobra.Command {
	var deckName string
	var kind string
	var count int
	var level string

	cmd := &cobra.Command{
		Use:     "test",
		Aliases: []string{"quiz"},
		Short:   "Quiz yourself on the words of a deck",
		Long: "Asks up to --number questions drawn at random from the deck. --kind selects the direction: " +
			strings.Join(quiz.KindNames(), ", ") + ". A word is asked at most once per direction.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("kind") {
				kind = cfg.Quiz.DefaultKind
			}
			if !cmd.Flags().Changed("number") {
				count = cfg.Quiz.DefaultCount
			}
			categories, err := quiz.ParseKind(kind)
			if err != nil {
				return err
			}
			filter, err := levelFilterFlag(level)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			var words map[string]deck.Word
			if err := ctx.withStore(cmd, func(s *store.Store) error {
				words, err = s.ListWords(deckName, filter)
				return err
			}); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(words) == 0 {
				fmt.Fprintf(out, "No words available in deck %q.\n", deckName)
				return nil
			}

			session, err := quiz.NewSession(words, quiz.Options{
				Categories: categories,
				Count:      count,
				Rand:       ctx.deps.rand,
				Logger:     logging.WithContext(cmd.Context(), logger),
			})
			if err != nil {
				return err
			}

			in := ctx.deps.stdin
			if in == nil {
				in = cmd.InOrStdin()
			}
			input := newLineInput(in, out)
			defer input.Close()

			colorize := shouldColorize(out)
			result, err := session.Run(cmd.Context(), &linePrompter{input: input}, &lineReporter{out: out, colorize: colorize})
			if err != nil && !isQuizInterrupt(err) {
				return err
			}
			if session.Exhausted() && result.Asked < count {
				fmt.Fprintln(out, "\nNo more words available for testing in this deck.")
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderQuizSummary(result, categories, colorize))
			return nil
		},
	}

	deckFlag(cmd, &deckName, "Deck to test words from")
	cmd.Flags().StringVarP(&kind, "kind", "k", quiz.MixedKind, "Question direction: "+strings.Join(quiz.KindNames(), ", "))
	cmd.Flags().IntVarP(&count, "number", "n", 10, "Maximum number of questions")
	cmd.Flags().StringVarP(&level, "level", "l", "", "Only test words at this level (0-10, -1 for unset)")
	return cmd
}

// isQuizInterrupt reports whether err ends the quiz early without failing the
// command: end of input, Ctrl-C in readline, or a cancelled context.
func isQuizInterrupt(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) || errors.Is(err, context.Canceled)
}

type linePrompter struct {
	input lineInput
}

func (p *linePrompter) Ask(_ context.Context, q quiz.Question) (string, error) {
	return p.input.ReadLine(questionText(q))
}

func questionText(q quiz.Question) string {
	switch q.Category {
	case quiz.ChineseToPinyin:
		return fmt.Sprintf("%d. What is the pinyin for %q? ", q.Number, q.Subject)
	case quiz.ChineseToMeaning:
		return fmt.Sprintf("%d. What is the English translation for %q? ", q.Number, q.Subject)
	case quiz.MeaningToChinese:
		return fmt.Sprintf("%d. What are the Chinese characters for %s? ", q.Number, q.Subject)
	case quiz.MeaningToPinyin:
		return fmt.Sprintf("%d. What is the pinyin for %s? ", q.Number, q.Subject)
	default:
		return fmt.Sprintf("%d. %s? ", q.Number, q.Subject)
	}
}

type lineReporter struct {
	out      io.Writer
	colorize bool
}

func (r *lineReporter) Report(o quiz.Outcome) {
	if o.Correct {
		fmt.Fprintf(r.out, "%s Correct! %s\n\n", mark(true, r.colorize), o.Expected)
		return
	}
	fmt.Fprintf(r.out, "%s Incorrect! The answer is %s\n\n", mark(false, r.colorize), o.Expected)
}

func renderQuizSummary(result quiz.Result, categories []quiz.Category, colorize bool) string {
	if len(categories) == 0 {
		categories = quiz.Categories
	}
	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		missed := result.Failures[c]
		rows = append(rows, []string{c.Label(), strconv.Itoa(len(missed)), dash(strings.Join(missed, ", "))})
	}

	var b strings.Builder
	fmt.Fprintln(&b, heading("Test completed!", colorize))
	fmt.Fprintf(&b, "Total words tested: %d\n", result.Asked)
	fmt.Fprintf(&b, "%s Successfully answered: %d\n", mark(true, colorize), result.Correct)
	fmt.Fprintf(&b, "%s Total errors: %d\n", mark(false, colorize), result.Errors())
	b.WriteString(renderTable([]string{"Direction", "Errors", "Missed"}, rows, []columnAlignment{alignLeft, alignRight, alignLeft}))
	return b.String()
}
