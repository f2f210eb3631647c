package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const missedSpace = '•'

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledRunes styles each reference rune against what has been typed so far.
func buildStyledRunes(p palette, targetRunes, inputRunes []rune, cursorIndex int) []styledRune {
	currentWord := wordForCursor(findWords(targetRunes), cursorIndex)

	out := make([]styledRune, 0, len(targetRunes))
	for i, target := range targetRunes {
		displayed := target
		style := p.pending
		if i < len(inputRunes) {
			switch {
			case target == ' ' && inputRunes[i] != ' ':
				displayed = missedSpace
				style = p.incorrect
			case inputRunes[i] == target:
				style = p.correct
			default:
				style = p.incorrect
			}
		} else if target != ' ' && currentWord != nil && i >= currentWord.start && i < currentWord.end {
			style = p.currentWord
		}
		if i == cursorIndex && i >= len(inputRunes) {
			style = style.Underline(true)
		}
		out = append(out, styledRune{
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			isSpace: target == ' ',
		})
	}
	return out
}

type wordRange struct {
	start int
	end   int
}

func findWords(targetRunes []rune) []wordRange {
	var words []wordRange
	start := -1
	for i := 0; i <= len(targetRunes); i++ {
		atBreak := i == len(targetRunes) || targetRunes[i] == ' '
		switch {
		case atBreak && start != -1:
			words = append(words, wordRange{start: start, end: i})
			start = -1
		case !atBreak && start == -1:
			start = i
		}
	}
	return words
}

// wordForCursor returns the word holding the cursor, or the next word when the
// cursor sits on a space. A negative cursor means the text is finished.
func wordForCursor(words []wordRange, cursorIndex int) *wordRange {
	if len(words) == 0 {
		return nil
	}
	if cursorIndex < 0 {
		return &words[0]
	}
	for i := range words {
		if cursorIndex < words[i].end {
			return &words[i]
		}
	}
	return &words[len(words)-1]
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks the styled text into lines of at most width columns,
// preferring to break on spaces. The breaking space is dropped.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var lines []string
	lineStart := 0
	lineWidth := 0
	lastSpace := -1
	for i := 0; i < len(runes); i++ {
		item := runes[i]
		if lineWidth+item.width > width && i > lineStart {
			if lastSpace >= lineStart {
				lines = append(lines, renderStyledRunes(runes[lineStart:lastSpace]))
				lineStart = lastSpace + 1
			} else {
				lines = append(lines, renderStyledRunes(runes[lineStart:i]))
				lineStart = i
			}
			lastSpace = -1
			lineWidth = widthOf(runes[lineStart:i])
			for j := lineStart; j < i; j++ {
				if runes[j].isSpace {
					lastSpace = j
				}
			}
		}
		lineWidth += item.width
		if item.isSpace {
			lastSpace = i
		}
	}
	lines = append(lines, renderStyledRunes(runes[lineStart:]))
	return strings.Join(lines, "\n")
}

func widthOf(runes []styledRune) int {
	total := 0
	for _, item := range runes {
		total += item.width
	}
	return total
}
