package session

import "sort"

// CharCount holds per-character results keyed by the expected character.
type CharCount struct {
	Char      rune
	Correct   int
	Incorrect int
}

// CharCounts tallies typed against reference per expected character. Spaces
// are skipped.
func CharCounts(typed, reference []rune) []CharCount {
	counts := map[rune]*CharCount{}
	for i, r := range typed {
		if i >= len(reference) {
			break
		}
		expected := reference[i]
		if expected == ' ' {
			continue
		}
		entry, ok := counts[expected]
		if !ok {
			entry = &CharCount{Char: expected}
			counts[expected] = entry
		}
		if r == expected {
			entry.Correct++
		} else {
			entry.Incorrect++
		}
	}
	out := make([]CharCount, 0, len(counts))
	for _, entry := range counts {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Char < out[j].Char
	})
	return out
}
