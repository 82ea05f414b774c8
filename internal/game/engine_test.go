package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/feedback"
)

func TestApplyGuessWin(t *testing.T) {
	g := New("s1", "crane", 6, 5)
	marks, err := g.ApplyGuess("CRANE ")
	require.NoError(t, err)
	assert.True(t, feedback.AllHit(marks), "normalizes case and whitespace")
	assert.Equal(t, "won", g.State())
	assert.True(t, g.Finished)
}

func TestApplyGuessLossAfterRows(t *testing.T) {
	g := New("s1", "crane", 2, 5)
	_, err := g.ApplyGuess("slate")
	require.NoError(t, err)
	assert.Equal(t, "playing", g.State())

	_, err = g.ApplyGuess("brake")
	require.NoError(t, err)
	assert.Equal(t, "lost", g.State())

	_, err = g.ApplyGuess("trace")
	assert.EqualError(t, err, "game finished")
}

func TestApplyGuessRejectsInvalid(t *testing.T) {
	g := New("s1", "crane", 6, 5)
	for _, bad := range []string{"four", "toolong", "br4ke", ""} {
		_, err := g.ApplyGuess(bad)
		assert.EqualError(t, err, "invalid guess", "guess %q", bad)
	}
	assert.Empty(t, g.Guesses)
}

func TestApplyGuessScores(t *testing.T) {
	g := New("s1", "brake", 6, 5)
	marks, err := g.ApplyGuess("trace")
	require.NoError(t, err)
	assert.Equal(t, feedback.Score("trace", "brake"), marks)
	assert.Equal(t, []string{"trace"}, g.Guesses)
}
