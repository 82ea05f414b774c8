// internal/game/engine.go
//
// Game engine for the local practice server.
// Responsibilities:
//   - Create games with configurable dimensions.
//   - Validate and apply guesses (length, alphabetic).
//   - Score guesses via the shared feedback package.
//   - Track state transitions: playing → won/lost.

package game

import (
	"errors"
	"strings"

	"github.com/robalobadob/wordle-solver/internal/feedback"
)

// New constructs a game with the given answer and dimensions.
func New(id, answer string, rows, cols int) *Game {
	return &Game{
		ID:      id,
		Answer:  strings.ToLower(answer),
		Rows:    rows,
		Cols:    cols,
		Guesses: []string{},
	}
}

// ApplyGuess validates and scores a guess, mutating the game state.
// Returns the per-letter marks or an error.
//
// State transitions:
//   - All tiles Hit → Finished = true, Won = true.
//   - Guess count reaches Rows → Finished = true (loss).
func (g *Game) ApplyGuess(guess string) ([]feedback.Mark, error) {
	if g.Finished {
		return nil, errors.New("game finished")
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if len(guess) != g.Cols || !isAlpha(guess) {
		return nil, errors.New("invalid guess")
	}

	marks := feedback.Score(guess, g.Answer)
	g.Guesses = append(g.Guesses, guess)

	if feedback.AllHit(marks) {
		g.Finished, g.Won = true, true
	} else if len(g.Guesses) >= g.Rows {
		g.Finished = true
	}
	return marks, nil
}

// State reports a coarse string representation of the current game state.
func (g *Game) State() string {
	if g.Finished {
		if g.Won {
			return "won"
		}
		return "lost"
	}
	return "playing"
}

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
