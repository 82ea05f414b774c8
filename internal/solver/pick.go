// internal/solver/pick.go
//
// Guess selection policy. Three cases, checked in order:
//   1. Two or fewer candidates → take the first (deterministic, always a
//      member of the candidate set).
//   2. No information yet (candidate set still equals the full dictionary)
//      and the opener fallback is a dictionary word → use the opener.
//   3. Otherwise score every candidate by distinct-letter frequency across
//      the remaining candidates and take the best, first-wins on ties.

package solver

// pick selects the next guess from the current candidate set.
// Callers must ensure the set is non-empty.
func (s *Solver) pick() string {
	if len(s.candidates) <= 2 {
		return s.candidates[0]
	}
	if len(s.candidates) == len(s.dict) && s.opener != "" && contains(s.candidates, s.opener) {
		return s.opener
	}

	freq := letterFrequencies(s.candidates)
	best, bestScore := "", -1
	for _, w := range s.candidates {
		if sc := scoreWord(w, freq); sc > bestScore {
			best, bestScore = w, sc
		}
	}
	return best
}

// letterFrequencies counts, for each letter, how many candidates contain it.
// A letter counts once per candidate no matter how often it repeats inside
// that candidate.
func letterFrequencies(candidates []string) [26]int {
	var freq [26]int
	for _, w := range candidates {
		var seen [26]bool
		for _, r := range w {
			j := idx(r)
			if j >= 0 && j < 26 && !seen[j] {
				seen[j] = true
				freq[j]++
			}
		}
	}
	return freq
}

// scoreWord sums the frequency-table value of each distinct letter in w.
// Repeated letters contribute once, so words covering more common letters
// score higher than words wasting positions on duplicates.
func scoreWord(w string, freq [26]int) int {
	var seen [26]bool
	score := 0
	for _, r := range w {
		j := idx(r)
		if j >= 0 && j < 26 && !seen[j] {
			seen[j] = true
			score += freq[j]
		}
	}
	return score
}

// idx maps a lowercase ASCII letter rune to 0..25.
func idx(r rune) int { return int(r - 'a') }

// contains reports whether list has the word w.
func contains(list []string, w string) bool {
	for _, x := range list {
		if x == w {
			return true
		}
	}
	return false
}
