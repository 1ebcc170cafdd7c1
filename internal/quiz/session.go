package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"

	"hzcli/internal/deck"
	"hzcli/internal/logging"
	"hzcli/internal/services"
)

// Question is one prompt drawn from a pool.
type Question struct {
	// Number is 1-based within the session.
	Number   int
	Category Category
	Headword string
	// Subject is what the user is shown: the headword for chinese-* categories,
	// the joined translations otherwise.
	Subject string
}

// Outcome is a graded answer.
type Outcome struct {
	Question Question
	Response string
	Correct  bool
	// Expected is the accepted answer rendered for display.
	Expected string
}

// Result summarizes a session.
type Result struct {
	SessionID string
	Asked     int
	Correct   int
	// Failures lists the headwords answered incorrectly, per category, in the
	// order they were asked.
	Failures map[Category][]string
}

// Errors returns the total number of incorrect answers.
func (r Result) Errors() int {
	return r.Asked - r.Correct
}

// Options configures a session.
type Options struct {
	// Categories restricts the session; empty means every category.
	Categories []Category
	// Count is the maximum number of questions; it must be positive.
	Count int
	// Rand drives sampling. Nil uses an unseeded source.
	Rand   *rand.Rand
	Logger *slog.Logger
}

// Prompter asks a question and returns the user's response.
type Prompter interface {
	Ask(ctx context.Context, q Question) (string, error)
}

// Reporter receives each graded outcome.
type Reporter interface {
	Report(o Outcome)
}

// Session is a single quiz run. It is not safe for concurrent use.
type Session struct {
	id      string
	words   map[string]deck.Word
	pools   map[Category]*pool
	order   []Category
	count   int
	rng     *rand.Rand
	logger  *slog.Logger
	pending *Question
	result  Result
}

// NewSession partitions words into category pools.
func NewSession(words map[string]deck.Word, opts Options) (*Session, error) {
	if opts.Count <= 0 {
		return nil, services.Wrap(services.ErrArgument, "quiz", "start",
			fmt.Sprintf("number of questions must be positive, got %d", opts.Count), nil)
	}
	categories := opts.Categories
	if len(categories) == 0 {
		categories = Categories
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	id := uuid.NewString()
	s := &Session{
		id:     id,
		words:  words,
		pools:  make(map[Category]*pool, len(categories)),
		count:  opts.Count,
		rng:    rng,
		logger: logging.NewComponentLogger(opts.Logger, "quiz").With(logging.String(logging.FieldSessionID, id)),
		result: Result{SessionID: id, Failures: map[Category][]string{}},
	}

	headwords := deck.SortedHeadwords(words)
	for _, c := range Categories {
		if !slices.Contains(categories, c) {
			continue
		}
		eligible := make([]string, 0, len(headwords))
		for _, hw := range headwords {
			if c.eligible(words[hw]) {
				eligible = append(eligible, hw)
			}
		}
		if len(eligible) == 0 {
			continue
		}
		s.pools[c] = newPool(eligible)
		s.order = append(s.order, c)
	}

	s.logger.Info("quiz session started",
		logging.Int("words", len(words)),
		logging.Int("requested", opts.Count),
		logging.Int("available", s.Remaining()))
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Remaining returns the number of (word, category) pairs not yet asked.
func (s *Session) Remaining() int {
	total := 0
	for _, p := range s.pools {
		total += p.Len()
	}
	return total
}

// Exhausted reports whether every pool is empty.
func (s *Session) Exhausted() bool {
	return len(s.order) == 0
}

// Next draws the next question. It returns false once the requested count
// has been asked or every pool is empty.
func (s *Session) Next() (Question, bool) {
	if s.pending != nil {
		return *s.pending, true
	}
	if s.result.Asked >= s.count || s.Exhausted() {
		return Question{}, false
	}

	ci := s.rng.IntN(len(s.order))
	c := s.order[ci]
	p := s.pools[c]
	hw := p.Take(s.rng)
	if p.Len() == 0 {
		delete(s.pools, c)
		s.order = slices.Delete(s.order, ci, ci+1)
	}

	q := Question{
		Number:   s.result.Asked + 1,
		Category: c,
		Headword: hw,
		Subject:  subject(c, hw, s.words[hw]),
	}
	s.pending = &q
	return q, true
}

// Answer grades response against the pending question.
func (s *Session) Answer(response string) (Outcome, error) {
	if s.pending == nil {
		return Outcome{}, services.Wrap(services.ErrInvalidState, "quiz", "answer", "no question pending", nil)
	}
	q := *s.pending
	s.pending = nil

	w := s.words[q.Headword]
	o := Outcome{
		Question: q,
		Response: response,
		Correct:  grade(q.Category, q.Headword, w, response),
		Expected: expected(q.Category, q.Headword, w),
	}
	s.result.Asked++
	if o.Correct {
		s.result.Correct++
	} else {
		s.result.Failures[q.Category] = append(s.result.Failures[q.Category], q.Headword)
	}
	s.logger.Debug("answer graded",
		logging.String(logging.FieldWord, q.Headword),
		logging.String("category", q.Category.String()),
		logging.Bool("correct", o.Correct))
	return o, nil
}

// Result returns a snapshot of the session's tally.
func (s *Session) Result() Result {
	out := s.result
	out.Failures = make(map[Category][]string, len(s.result.Failures))
	for c, words := range s.result.Failures {
		out.Failures[c] = slices.Clone(words)
	}
	return out
}

// Run asks questions until the session finishes, reporting each outcome.
// A prompter error aborts the session and is returned with the partial result.
func (s *Session) Run(ctx context.Context, prompter Prompter, reporter Reporter) (Result, error) {
	for {
		if err := ctx.Err(); err != nil {
			return s.finish(), err
		}
		q, ok := s.Next()
		if !ok {
			return s.finish(), nil
		}
		response, err := prompter.Ask(ctx, q)
		if err != nil {
			s.pending = nil
			return s.finish(), err
		}
		o, err := s.Answer(response)
		if err != nil {
			return s.finish(), err
		}
		if reporter != nil {
			reporter.Report(o)
		}
	}
}

func (s *Session) finish() Result {
	r := s.Result()
	s.logger.Info("quiz session finished",
		logging.Int("asked", r.Asked),
		logging.Int("correct", r.Correct),
		logging.Int("errors", r.Errors()),
		logging.Bool("exhausted", s.Exhausted()))
	return r
}
