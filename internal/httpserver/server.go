// internal/httpserver/server.go
//
// Local practice server speaking the same wire contract the solver
// consumes, so runs can be pointed at http://localhost:PORT instead of the
// remote deployment.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, panic recovery, timeouts,
//     JSON content type).
//   - POST /register → create a player session, return its id.
//   - POST /create   → create or overwrite the session's game.
//   - POST /guess    → apply a guess, answer with feedback letters.
//   - GET  /health   → liveness probe.
//
// Notes:
//   - Feedback misses are encoded as 'B'; the solver's decoder accepts both
//     'B' and 'R' since the remote deployment has been seen using either.
//   - "daily" mode derives a deterministic answer from the date and a salt,
//     so every daily session on one date shares an answer.

package httpserver

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/daily"
	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Config carries the word lists and game dimensions for the server.
type Config struct {
	Words       []string // answer pool, already length-filtered
	Allowed     []string // extra valid guesses; answers are always allowed
	WordLen     int      // letters per word
	MaxAttempts int      // rows per game
	DailySalt   string   // salt for deterministic daily answers
}

// Server bundles the router, game store, and registered sessions.
type Server struct {
	r        *chi.Mux
	store    store.Store
	cfg      Config
	allowed  map[string]struct{} // valid guesses
	mu       sync.Mutex          // guards sessions
	sessions map[string]string   // session id → mode
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, cfg Config) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		store:    st,
		cfg:      cfg,
		allowed:  words.Set(append(append([]string{}, cfg.Words...), cfg.Allowed...)),
		sessions: make(map[string]string),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Post("/register", s.handleRegister)
	s.r.Post("/create", s.handleCreate)
	s.r.Post("/guess", s.handleGuess)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ handlers -----------------------------------

type registerReq struct {
	Mode string `json:"mode"` // "wordle" | "daily"
	Name string `json:"name"`
}
type registerRes struct {
	ID string `json:"id"`
}

// handleRegister creates a player session and returns its id.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	mode := req.Mode
	if mode == "" {
		mode = "wordle"
	}
	if mode != "wordle" && mode != "daily" {
		http.Error(w, `{"error":"unknown_mode"}`, http.StatusBadRequest)
		return
	}

	id := randomID()
	s.mu.Lock()
	s.sessions[id] = mode
	s.mu.Unlock()

	log.Info().Str("session", id).Str("mode", mode).Str("name", req.Name).Msg("registered")
	_ = json.NewEncoder(w).Encode(registerRes{ID: id})
}

type createReq struct {
	ID        string `json:"id"`
	Overwrite bool   `json:"overwrite"`
}

// handleCreate creates (or, with overwrite, replaces) the session's game.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	mode, ok := s.sessions[req.ID]
	s.mu.Unlock()
	if !ok {
		http.Error(w, `{"error":"unknown_session"}`, http.StatusNotFound)
		return
	}
	if g, err := s.store.Get(r.Context(), req.ID); err == nil && !g.Finished && !req.Overwrite {
		http.Error(w, `{"error":"game_in_progress"}`, http.StatusConflict)
		return
	}

	g := game.New(req.ID, s.pickAnswer(mode), s.cfg.MaxAttempts, s.cfg.WordLen)
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

type guessReq struct {
	Guess string `json:"guess"`
	ID    string `json:"id"`
}
type guessRes struct {
	Feedback string `json:"feedback"`
	State    string `json:"state"` // "playing" | "won" | "lost"
}

// handleGuess applies a guess to the session's game and returns feedback.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	g, err := s.store.Get(r.Context(), req.ID)
	if err != nil {
		http.Error(w, `{"error":"no_game"}`, http.StatusNotFound)
		return
	}
	if _, ok := s.allowed[normalizeGuess(req.Guess)]; !ok {
		http.Error(w, `{"error":"not in word list"}`, http.StatusBadRequest)
		return
	}
	marks, err := g.ApplyGuess(req.Guess)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(guessRes{Feedback: feedback.Letters(marks), State: g.State()})
}

// pickAnswer chooses the answer for a new game: deterministic by date for
// "daily" mode, random otherwise.
func (s *Server) pickAnswer(mode string) string {
	if mode == "daily" {
		return s.cfg.Words[daily.WordIndex(time.Now(), s.cfg.DailySalt, len(s.cfg.Words))]
	}
	return s.cfg.Words[randomIndex(len(s.cfg.Words))]
}

// normalizeGuess lowercases and trims a guess for the allowed-list check.
// Shape validation stays in the game engine.
func normalizeGuess(g string) string {
	return strings.ToLower(strings.TrimSpace(g))
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// randomIndex returns a crypto-random index in [0, n).
func randomIndex(n int) int {
	if n <= 1 {
		return 0
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(nBig.Int64())
}
