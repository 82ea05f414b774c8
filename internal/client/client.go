// internal/client/client.go
//
// HTTP game session against the remote Wordle server.
// Implements solver.Session over the three-endpoint wire contract:
//   - POST {base}/register {"mode":"wordle","name":...} → {"id":...}
//   - POST {base}/create   {"id":...,"overwrite":true}
//   - POST {base}/guess    {"guess":...,"id":...}       → {"feedback":"GYB.."}
//
// Notes:
//   - Every request failure is terminal for the run; there is no retry
//     policy here or in the solver.
//   - The feedback string is decoded by feedback.ParseRemote, which accepts
//     both observed miss markers ('B' and 'R') and rejects anything else.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle-solver/internal/feedback"
)

// Client is a remote game session. Create one per run.
type Client struct {
	baseURL    string
	playerName string
	wordLen    int
	http       *http.Client
	log        zerolog.Logger
	sessionID  string
}

// New constructs a Client for the given API base URL (no trailing slash
// required) and player name.
func New(baseURL, playerName string, wordLen int, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		playerName: playerName,
		wordLen:    wordLen,
		http:       &http.Client{Timeout: 15 * time.Second},
		log:        log,
	}
}

// SessionID returns the server-assigned id, empty before Start.
func (c *Client) SessionID() string { return c.sessionID }

type registerReq struct {
	Mode string `json:"mode"`
	Name string `json:"name"`
}
type registerRes struct {
	ID string `json:"id"`
}

type createReq struct {
	ID        string `json:"id"`
	Overwrite bool   `json:"overwrite"`
}

type guessReq struct {
	Guess string `json:"guess"`
	ID    string `json:"id"`
}
type guessRes struct {
	Feedback string `json:"feedback"`
}

// Start registers the player and creates (or overwrites) a game.
// Must be called once before Guess.
func (c *Client) Start(ctx context.Context) error {
	var reg registerRes
	if err := c.post(ctx, "register", registerReq{Mode: "wordle", Name: c.playerName}, &reg); err != nil {
		return err
	}
	if reg.ID == "" {
		return fmt.Errorf("register: server returned no session id")
	}
	c.sessionID = reg.ID
	c.log.Info().Str("session", c.sessionID).Msg("registered")

	if err := c.post(ctx, "create", createReq{ID: c.sessionID, Overwrite: true}, nil); err != nil {
		return err
	}
	c.log.Info().Msg("game created")
	return nil
}

// Guess submits a word and returns the decoded per-letter marks.
func (c *Client) Guess(ctx context.Context, word string) ([]feedback.Mark, error) {
	if c.sessionID == "" {
		return nil, fmt.Errorf("guess: session not started")
	}
	var res guessRes
	if err := c.post(ctx, "guess", guessReq{Guess: word, ID: c.sessionID}, &res); err != nil {
		return nil, err
	}
	marks, err := feedback.ParseRemote(res.Feedback, c.wordLen)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Str("guess", word).Str("feedback", res.Feedback).Msg("guess answered")
	return marks, nil
}

// post sends a JSON body to {base}/{endpoint} and decodes the response into
// out (skipped when out is nil). Non-2xx statuses are errors carrying a
// short prefix of the response body for diagnostics.
func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", endpoint, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("%s: server returned %d: %s", endpoint, resp.StatusCode, bytes.TrimSpace(snippet))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", endpoint, err)
	}
	return nil
}
