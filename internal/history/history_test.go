package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "data", "solver.db"))
	require.NoError(t, err, "Open creates the parent directory")
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func record(t *testing.T, st *Store, state string, attempts int) {
	t.Helper()
	word := ""
	if state == "solved" {
		word = "crane"
	}
	require.NoError(t, st.Record(context.Background(), Run{
		Word:      word,
		State:     state,
		Attempts:  attempts,
		DictSize:  500,
		ElapsedMs: 1200,
		StartedAt: time.Now(),
	}))
}

func TestRecordAndRecent(t *testing.T) {
	st := openTemp(t)
	record(t, st, "solved", 3)
	record(t, st, "exhausted", 0)
	record(t, st, "solved", 4)

	runs, err := st.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "solved", runs[0].State, "most recent first")
	assert.Equal(t, 4, runs[0].Attempts)
	assert.Equal(t, "exhausted", runs[1].State)
}

func TestStats(t *testing.T) {
	st := openTemp(t)
	record(t, st, "solved", 3)
	record(t, st, "exhausted", 0)
	record(t, st, "solved", 5)
	record(t, st, "solved", 3)

	stats, err := st.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Played)
	assert.Equal(t, 3, stats.Solved)
	assert.InDelta(t, (3.0+5.0+3.0)/3.0, stats.AvgAttempts, 0.001)
	assert.Equal(t, 2, stats.Streak, "streak counts back to the last non-solved run")
}

func TestStatsEmpty(t *testing.T) {
	st := openTemp(t)
	stats, err := st.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Played)
	assert.Zero(t, stats.Streak)
}

func TestStreakBrokenByFailure(t *testing.T) {
	st := openTemp(t)
	record(t, st, "solved", 2)
	record(t, st, "failed", 0)

	stats, err := st.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Streak)
}
