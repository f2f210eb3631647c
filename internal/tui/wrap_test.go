package tui

import (
	"strings"
	"testing"
)

var testPalette = ThemeFor("classic").palette()

func TestBuildStyledRunesCursor(t *testing.T) {
	runes := buildStyledRunes(testPalette, []rune("ab"), []rune("a"), 1)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != testPalette.correct.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != testPalette.cursor.Render("b") {
		t.Fatalf("expected cursor style for second rune")
	}
}

func TestBuildStyledRunesNoCursorWhenComplete(t *testing.T) {
	runes := buildStyledRunes(testPalette, []rune("a"), []rune("a"), -1)
	if len(runes) != 1 {
		t.Fatalf("expected 1 rune, got %d", len(runes))
	}
	if runes[0].s != testPalette.correct.Render("a") {
		t.Fatalf("expected correct style for completed rune")
	}
}

func TestBuildStyledRunesKeepsTargetOnMistype(t *testing.T) {
	runes := buildStyledRunes(testPalette, []rune("ab"), []rune("ax"), 2)
	if runes[1].s != testPalette.incorrect.Render("b") {
		t.Fatalf("expected the reference rune in incorrect style")
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	runes := buildStyledRunes(testPalette, []rune("one two"), []rune("o"), 1)
	if runes[1].s != testPalette.currentWord.Render("n") {
		t.Fatalf("expected current word style for untyped rune in current word")
	}
	if runes[4].s != testPalette.pending.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestBuildStyledRunesCursorOnSpaceHighlightsNextWord(t *testing.T) {
	runes := buildStyledRunes(testPalette, []rune("one two"), []rune("one"), 3)
	if runes[4].s != testPalette.currentWord.Render("t") {
		t.Fatalf("expected the following word to be highlighted")
	}
}

func TestBuildStyledRunesMissedSpace(t *testing.T) {
	runes := buildStyledRunes(testPalette, []rune("a b"), []rune("ax"), 2)
	if runes[1].s != testPalette.incorrect.Render(string(missedSpace)) {
		t.Fatalf("expected a visible marker for a mistyped space")
	}
}

func TestWrapStyledRunesBreaksOnSpaces(t *testing.T) {
	plain := func(s string) []styledRune {
		out := make([]styledRune, 0, len(s))
		for _, r := range s {
			out = append(out, styledRune{s: string(r), width: 1, isSpace: r == ' '})
		}
		return out
	}
	got := wrapStyledRunes(plain("aaa bbb ccc"), 7)
	if got != "aaa\nbbb ccc" {
		t.Fatalf("unexpected wrap %q", got)
	}
	got = wrapStyledRunes(plain("abcdefgh"), 3)
	if got != "abc\ndef\ngh" {
		t.Fatalf("unexpected hard wrap %q", got)
	}
	if got := wrapStyledRunes(plain("a b"), 0); got != "a b" {
		t.Fatalf("expected no wrap for zero width, got %q", got)
	}
	for _, line := range strings.Split(wrapStyledRunes(plain("the quick brown fox jumps"), 10), "\n") {
		if len(line) > 10 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
}
