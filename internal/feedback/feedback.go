// internal/feedback/feedback.go
//
// Per-letter guess feedback: the Mark type, the pure scoring function, and
// the wire encodings used by the game server protocol.
// Responsibilities:
//   - Mark: evaluation result for a single letter (hit/present/miss).
//   - Score: the classic two-pass Wordle algorithm, multiset-aware.
//   - ParseRemote/Letters: translate between Mark slices and the server's
//     single-letter feedback strings.
//
// Notes:
//   - Score is pure and deterministic; it is used both to drive the local
//     practice engine and to filter solver candidates against real feedback.
//   - The remote server marks misses with either 'B' or 'R' depending on
//     deployment; both decode to MarkMiss. Anything else is an error.

package feedback

import "fmt"

// Mark represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "hit":     letter is correct and in the correct position.
//   - "present": letter exists in the answer but in a different position.
//   - "miss":    letter does not exist among the remaining answer letters.
type Mark string

const (
	MarkHit     Mark = "hit"
	MarkPresent Mark = "present"
	MarkMiss    Mark = "miss"
)

// Score implements the standard Wordle two-pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Hit.
//   - Count remaining (non-hit) answer letters by letter index.
//
// Pass 2:
//   - For each non-hit guess letter, left to right: if there is remaining
//     count for that letter, mark Present and decrement the count;
//     otherwise mark Miss.
//
// Left-to-right consumption in pass 2 matters: with a repeated guess letter
// and a single unused answer letter, the leftmost occurrence gets Present
// and later occurrences get Miss. Hits never compete for the present pool.
func Score(guess, answer string) []Mark {
	n := len(guess)
	res := make([]Mark, n)
	guessRunes := []rune(guess)
	answerRunes := []rune(answer)

	// Letter frequency for the non-hit positions (a–z).
	var counts [26]int

	// First pass: mark hits and collect counts for remaining answer letters.
	for i := 0; i < n; i++ {
		if guessRunes[i] == answerRunes[i] {
			res[i] = MarkHit
		} else {
			counts[idx(answerRunes[i])]++
		}
	}

	// Second pass: resolve presents/misses for non-hit tiles.
	for i := 0; i < n; i++ {
		if res[i] == MarkHit {
			continue
		}
		j := idx(guessRunes[i])
		if j >= 0 && j < 26 && counts[j] > 0 {
			res[i] = MarkPresent
			counts[j]--
		} else {
			res[i] = MarkMiss
		}
	}
	return res
}

// AllHit returns true if every mark is MarkHit.
func AllHit(m []Mark) bool {
	for _, x := range m {
		if x != MarkHit {
			return false
		}
	}
	return true
}

// Equal reports whether two mark slices are identical.
func Equal(a, b []Mark) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ParseRemote decodes a server feedback string into marks.
// The server alphabet:
//   - 'G' → hit (green)
//   - 'Y' → present (yellow)
//   - 'B' or 'R' → miss (the miss marker varies across deployments)
//
// A length mismatch or an unrecognized symbol is a hard error; silently
// treating unknown symbols as misses would corrupt candidate filtering.
func ParseRemote(s string, length int) ([]Mark, error) {
	if len(s) != length {
		return nil, fmt.Errorf("feedback %q: want %d symbols, got %d", s, length, len(s))
	}
	out := make([]Mark, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'G':
			out[i] = MarkHit
		case 'Y':
			out[i] = MarkPresent
		case 'B', 'R':
			out[i] = MarkMiss
		default:
			return nil, fmt.Errorf("feedback %q: unknown symbol %q at position %d", s, s[i], i)
		}
	}
	return out, nil
}

// Letters encodes marks into the canonical wire string (G/Y/B).
// Used by the practice server when answering guesses.
func Letters(marks []Mark) string {
	b := make([]byte, len(marks))
	for i, m := range marks {
		switch m {
		case MarkHit:
			b[i] = 'G'
		case MarkPresent:
			b[i] = 'Y'
		default:
			b[i] = 'B'
		}
	}
	return string(b)
}

// idx maps a lowercase ASCII letter rune to 0..25.
// Assumes inputs are validated to a–z elsewhere.
func idx(r rune) int { return int(r - 'a') }
