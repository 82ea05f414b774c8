// internal/solver/solver.go
//
// The solving loop: owns the candidate set, exchanges guesses with a game
// session, and narrows candidates using the pure feedback simulator.
// Responsibilities:
//   - Drive the attempt loop: pick → submit → check → filter.
//   - Maintain the candidate set invariant: as long as the simulator agrees
//     with the server, the true answer is always among the candidates.
//   - Surface every failure immediately; there are no retries at this layer.
//
// The loop is strictly sequential: one guess in flight at a time, and the
// candidate set has a single owner.

package solver

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle-solver/internal/feedback"
)

// DefaultOpener is a strong precomputed opening guess. It is used only when
// no information has been gathered yet and the word is actually present in
// the dictionary; otherwise the frequency heuristic applies from the start.
const DefaultOpener = "soare"

// ErrNoCandidates signals that every dictionary word has been ruled out.
// This means the simulator and the real feedback disagreed, or the
// dictionary does not contain the answer. It is fatal, not retryable.
var ErrNoCandidates = errors.New("no candidates remain")

// Session is the game exchange the solver plays against. Start must be
// called once before any Guess. Implementations may talk HTTP or score
// locally; the solver only sees marks and errors.
type Session interface {
	Start(ctx context.Context) error
	Guess(ctx context.Context, word string) ([]feedback.Mark, error)
}

// State is the terminal state of a solving run.
type State string

const (
	StateSolved    State = "solved"
	StateExhausted State = "exhausted"
	StateFailed    State = "failed"
)

// Outcome is the result of a full run.
// Word and Attempts are meaningful only when State is StateSolved;
// Err only when State is StateFailed.
type Outcome struct {
	State    State
	Word     string
	Attempts int
	Err      error
}

// Solver narrows a candidate set over successive guesses.
type Solver struct {
	dict        []string
	candidates  []string
	maxAttempts int
	opener      string
	log         zerolog.Logger
}

// Option configures a Solver.
type Option func(*Solver)

// WithOpener overrides the opening-guess fallback word.
func WithOpener(w string) Option { return func(s *Solver) { s.opener = w } }

// WithLogger attaches a logger; the default discards everything.
func WithLogger(l zerolog.Logger) Option { return func(s *Solver) { s.log = l } }

// New constructs a Solver over the given dictionary. The dictionary is the
// initial candidate set; it is copied so the caller's slice stays untouched.
func New(dict []string, maxAttempts int, opts ...Option) *Solver {
	s := &Solver{
		dict:        dict,
		candidates:  append([]string(nil), dict...),
		maxAttempts: maxAttempts,
		opener:      DefaultOpener,
		log:         zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Candidates returns the current candidate set (read-only view for tests
// and diagnostics).
func (s *Solver) Candidates() []string { return s.candidates }

// Solve runs the full attempt loop against sess and returns the outcome.
//
// Per attempt:
//  1. An empty candidate set fails the run (ErrNoCandidates).
//  2. Pick a guess (see pick.go).
//  3. Submit it; a session error fails the run without retry.
//  4. All-hit feedback solves the run at the current attempt.
//  5. Otherwise retain exactly the candidates c with Score(guess, c)
//     equal to the received marks.
//
// Running out of attempts without solving yields StateExhausted.
func (s *Solver) Solve(ctx context.Context, sess Session) Outcome {
	if err := sess.Start(ctx); err != nil {
		return Outcome{State: StateFailed, Err: fmt.Errorf("start session: %w", err)}
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if len(s.candidates) == 0 {
			return Outcome{State: StateFailed, Err: ErrNoCandidates}
		}

		guess := s.pick()
		s.log.Info().
			Int("attempt", attempt).
			Int("candidates", len(s.candidates)).
			Str("guess", guess).
			Msg("guessing")

		marks, err := sess.Guess(ctx, guess)
		if err != nil {
			return Outcome{State: StateFailed, Err: fmt.Errorf("submit guess %q: %w", guess, err)}
		}

		if feedback.AllHit(marks) {
			return Outcome{State: StateSolved, Word: guess, Attempts: attempt}
		}

		before := len(s.candidates)
		s.candidates = Filter(s.candidates, guess, marks)
		s.log.Debug().
			Str("feedback", feedback.Letters(marks)).
			Int("before", before).
			Int("after", len(s.candidates)).
			Msg("filtered candidates")
	}
	return Outcome{State: StateExhausted}
}

// Filter retains exactly the candidates whose simulated feedback for guess
// matches the received marks. The result never grows, refiltering with the
// same pair is a no-op, and a candidate that actually produced the marks is
// always retained.
func Filter(candidates []string, guess string, marks []feedback.Mark) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if feedback.Equal(feedback.Score(guess, c), marks) {
			out = append(out, c)
		}
	}
	return out
}
