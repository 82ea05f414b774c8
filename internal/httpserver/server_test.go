package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/client"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/store"
)

func newTestServer(t *testing.T, wordList []string, allowed ...string) *httptest.Server {
	t.Helper()
	srv := New(store.NewMemoryStore(), Config{
		Words:       wordList,
		Allowed:     allowed,
		WordLen:     5,
		MaxAttempts: 6,
		DailySalt:   "test_salt",
	})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any, out any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestRegisterCreateGuessFlow(t *testing.T) {
	ts := newTestServer(t, []string{"crane"})

	var reg struct {
		ID string `json:"id"`
	}
	resp := postJSON(t, ts.URL+"/register", map[string]string{"mode": "wordle", "name": "tester"}, &reg)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, reg.ID)

	resp = postJSON(t, ts.URL+"/create", map[string]any{"id": reg.ID, "overwrite": true}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Single-word list, so the answer must be crane.
	var guess struct {
		Feedback string `json:"feedback"`
		State    string `json:"state"`
	}
	resp = postJSON(t, ts.URL+"/guess", map[string]string{"id": reg.ID, "guess": "crane"}, &guess)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "GGGGG", guess.Feedback)
	assert.Equal(t, "won", guess.State)
}

func TestGuessFeedbackLetters(t *testing.T) {
	ts := newTestServer(t, []string{"crane"}, "nacho")

	var reg struct {
		ID string `json:"id"`
	}
	postJSON(t, ts.URL+"/register", map[string]string{"mode": "wordle"}, &reg)
	postJSON(t, ts.URL+"/create", map[string]any{"id": reg.ID, "overwrite": true}, nil)

	var guess struct {
		Feedback string `json:"feedback"`
		State    string `json:"state"`
	}
	postJSON(t, ts.URL+"/guess", map[string]string{"id": reg.ID, "guess": "nacho"}, &guess)
	// Against crane: n present, a present, c present, h miss, o miss.
	assert.Equal(t, "YYYBB", guess.Feedback)
	assert.Equal(t, "playing", guess.State)
}

func TestRegisterRejectsUnknownMode(t *testing.T) {
	ts := newTestServer(t, []string{"crane"})
	resp := postJSON(t, ts.URL+"/register", map[string]string{"mode": "hangman"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateUnknownSession(t *testing.T) {
	ts := newTestServer(t, []string{"crane"})
	resp := postJSON(t, ts.URL+"/create", map[string]any{"id": "nope", "overwrite": true}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGuessWithoutGame(t *testing.T) {
	ts := newTestServer(t, []string{"crane"})

	var reg struct {
		ID string `json:"id"`
	}
	postJSON(t, ts.URL+"/register", map[string]string{"mode": "wordle"}, &reg)

	resp := postJSON(t, ts.URL+"/guess", map[string]string{"id": reg.ID, "guess": "crane"}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGuessOutsideWordListIsBadRequest(t *testing.T) {
	ts := newTestServer(t, []string{"crane"})

	var reg struct {
		ID string `json:"id"`
	}
	postJSON(t, ts.URL+"/register", map[string]string{"mode": "wordle"}, &reg)
	postJSON(t, ts.URL+"/create", map[string]any{"id": reg.ID, "overwrite": true}, nil)

	resp := postJSON(t, ts.URL+"/guess", map[string]string{"id": reg.ID, "guess": "slate"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInvalidGuessIsBadRequest(t *testing.T) {
	ts := newTestServer(t, []string{"crane"})

	var reg struct {
		ID string `json:"id"`
	}
	postJSON(t, ts.URL+"/register", map[string]string{"mode": "wordle"}, &reg)
	postJSON(t, ts.URL+"/create", map[string]any{"id": reg.ID, "overwrite": true}, nil)

	resp := postJSON(t, ts.URL+"/guess", map[string]string{"id": reg.ID, "guess": "abc"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDailyModeSharesAnswer(t *testing.T) {
	wordList := []string{"crane", "slate", "trace", "brake", "soare"}
	ts := newTestServer(t, wordList)

	// Two daily sessions on the same date must play the same answer: probe
	// each with the same guess and compare feedback.
	feedbacks := make([]string, 2)
	for i := range feedbacks {
		var reg struct {
			ID string `json:"id"`
		}
		postJSON(t, ts.URL+"/register", map[string]string{"mode": "daily"}, &reg)
		postJSON(t, ts.URL+"/create", map[string]any{"id": reg.ID, "overwrite": true}, nil)
		var guess struct {
			Feedback string `json:"feedback"`
		}
		postJSON(t, ts.URL+"/guess", map[string]string{"id": reg.ID, "guess": "slate"}, &guess)
		feedbacks[i] = guess.Feedback
	}
	assert.Equal(t, feedbacks[0], feedbacks[1])
}

// TestSolverAgainstPracticeServer wires the real HTTP client and solver
// against the practice server end to end.
func TestSolverAgainstPracticeServer(t *testing.T) {
	wordList := []string{"soare", "crane", "slate", "trace", "brake", "sassy", "silly"}
	ts := newTestServer(t, wordList)

	cl := client.New(ts.URL, "integration", 5, zerolog.Nop())
	s := solver.New(wordList, 6)
	out := s.Solve(context.Background(), cl)

	require.Equal(t, solver.StateSolved, out.State, "err: %v", out.Err)
	assert.Contains(t, wordList, out.Word)
	assert.LessOrEqual(t, out.Attempts, 6)
}
