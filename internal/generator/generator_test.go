package generator

import (
	"strings"
	"testing"
)

func TestTextWordCount(t *testing.T) {
	g := NewWithSeed(1)
	text := g.Text([]string{"alpha", "beta", "gamma"}, Options{Words: 12})
	if got := len(strings.Fields(text)); got != 12 {
		t.Fatalf("expected 12 words, got %d in %q", got, text)
	}
	if strings.Contains(text, "  ") {
		t.Fatalf("expected single spaces in %q", text)
	}
}

func TestTextAlwaysCapsAndPunct(t *testing.T) {
	g := NewWithSeed(2)
	text := g.Text([]string{"word"}, Options{Words: 3, CapsPct: 1, PunctPct: 1, PunctSet: []rune{'.'}})
	if text != "Word. Word. Word." {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestTextWeightedPrefersWeakChars(t *testing.T) {
	g := NewWithSeed(3)
	weak := map[rune]struct{}{'z': {}}
	text := g.Text([]string{"aaa", "zzz"}, Options{Words: 400, Weak: weak, WeakFactor: 10})
	zCount := strings.Count(text, "zzz")
	if zCount < 300 {
		t.Fatalf("expected weighted selection to favour weak words, got %d/400", zCount)
	}
}

func TestPassagesTitles(t *testing.T) {
	g := NewWithSeed(4)
	items := g.Passages([]string{"one"}, 2, Options{Words: 1})
	if len(items) != 2 || items[1].Title != "Words #2" || items[0].Text != "one" {
		t.Fatalf("unexpected passages: %+v", items)
	}
}

func TestTextEmptyInputs(t *testing.T) {
	g := NewWithSeed(5)
	if g.Text(nil, Options{Words: 3}) != "" {
		t.Fatalf("expected empty text for empty word list")
	}
}
