package session

import (
	"math"
	"strings"
	"time"
)

// InitialAccuracy is reported while nothing has been typed.
const InitialAccuracy = 100

// CountWords returns the number of whitespace-delimited tokens in typed.
func CountWords(typed string) int {
	return len(strings.Fields(typed))
}

// CompareRunes compares typed against reference position by position.
// Positions past the end of reference count as errors.
func CompareRunes(typed, reference []rune) (correct, incorrect int) {
	for i, r := range typed {
		if i < len(reference) && r == reference[i] {
			correct++
			continue
		}
		incorrect++
	}
	return correct, incorrect
}

// Accuracy returns the rounded percentage of correct characters. The second
// result is false when typed is zero and the ratio is undefined.
func Accuracy(correct, typed int) (int, bool) {
	if typed <= 0 {
		return 0, false
	}
	return roundHalfUp(100 * float64(correct) / float64(typed)), true
}

// WPM returns rounded words per minute. The second result is false until some
// time has elapsed.
func WPM(words int, elapsed time.Duration) (int, bool) {
	if elapsed <= 0 {
		return 0, false
	}
	minutes := float64(elapsed.Milliseconds()) / 60000.0
	if minutes <= 0 {
		return 0, false
	}
	return roundHalfUp(float64(words) / minutes), true
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
