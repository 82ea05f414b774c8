// internal/store/memory.go
//
// In-memory implementation of the game Store used by the practice server.
// Games are keyed by session id and lost on restart; that matches the
// remote server's observable behavior of one active game per session.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/wordle-solver/internal/game"
)

// ErrNotFound is returned by Get for unknown session ids.
var ErrNotFound = errors.New("game not found")

// Store defines the persistence interface for practice games.
type Store interface {
	// Save persists or replaces the game for its session id.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves the game for a session id.
	Get(ctx context.Context, id string) (*game.Game, error)
}

// memory is a map-based Store implementation.
type memory struct {
	mu    sync.RWMutex          // guards games map
	games map[string]*game.Game // keyed by Game.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*game.Game)}
}

// Save adds or replaces the game in the map.
func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	return nil
}

// Get looks up a game by session id.
func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, ErrNotFound
}
