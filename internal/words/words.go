// internal/words/words.go
//
// Word list loading for the solver and the practice server.
//
// Responsibilities:
//   - Load a newline-delimited word file, normalized to lowercase and
//     filtered to the configured word length.
//   - Fall back to a small embedded default list when no file is given.
//   - Provide a set helper for allowed-guess lookups.
//
// Constraints:
//   • Words must be alphabetic (a–z) and exactly the requested length.
//   • Lists are normalized to lowercase.
//   • An empty result is an error. The solver cannot run without a
//     dictionary, so this fails at load time rather than mid-game.

package words

import (
	"bufio"
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed default_words.txt
var embeddedWords string

// Load reads one word per line from path, lowercases, trims, and keeps only
// alphabetic words of the given length. If path is empty the embedded
// default list is used. Returns an error if the source is unreadable or no
// qualifying words remain.
func Load(path string, length int) ([]string, error) {
	var out []string
	if path == "" {
		out = normalizeLines(embeddedWords, length)
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open word list: %w", err)
		}
		defer f.Close()
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			if w, ok := normalize(sc.Text(), length); ok {
				out = append(out, w)
			}
		}
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read word list %s: %w", path, err)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("word list %q: no %d-letter words", path, length)
	}
	return out, nil
}

// normalizeLines processes an embedded multiline string into a slice of
// valid lowercase words of the given length.
func normalizeLines(s string, length int) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if w, ok := normalize(line, length); ok {
			out = append(out, w)
		}
	}
	return out
}

// normalize trims and lowercases a token, reporting whether it qualifies.
func normalize(tok string, length int) (string, bool) {
	w := strings.TrimSpace(strings.ToLower(tok))
	return w, len(w) == length && isAlpha(w)
}

// Set converts a word list into a lookup set.
func Set(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
