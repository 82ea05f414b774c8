// internal/game/types.go
//
// State for a single practice game hosted by the local server.

package game

// Game holds the state of one practice game.
type Game struct {
	ID       string   // owning session identifier
	Answer   string   // the solution word (always lowercase)
	Rows     int      // maximum number of guesses allowed
	Cols     int      // number of letters per word
	Guesses  []string // guesses made so far (lowercased)
	Finished bool     // true once the game is over (won or lost)
	Won      bool     // true if the game finished with a win
}
