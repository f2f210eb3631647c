package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of a variant.
type Theme struct {
	Title       string
	Accent      lipgloss.Color
	Correct     lipgloss.Color
	Incorrect   lipgloss.Color
	Pending     lipgloss.Color
	CurrentWord lipgloss.Color
	Muted       lipgloss.Color
}

var themes = map[string]Theme{
	"classic": {
		Title:       "MonkeyType Clone",
		Accent:      lipgloss.Color("#C89A3A"),
		Correct:     lipgloss.Color("#F0F0F0"),
		Incorrect:   lipgloss.Color("#FF4D4F"),
		Pending:     lipgloss.Color("#8C8C8C"),
		CurrentWord: lipgloss.Color("#C89A3A"),
		Muted:       lipgloss.Color("#6E6E6E"),
	},
	"retro": {
		Title:       ">>> MONKEYTYPE RETRO <<<",
		Accent:      lipgloss.Color("#50C9CE"),
		Correct:     lipgloss.Color("#D1D0C5"),
		Incorrect:   lipgloss.Color("#CA4754"),
		Pending:     lipgloss.Color("#646669"),
		CurrentWord: lipgloss.Color("#50C9CE"),
		Muted:       lipgloss.Color("#2E382E"),
	},
	"minimal": {
		Title:       "type",
		Accent:      lipgloss.Color("#E2B714"),
		Correct:     lipgloss.Color("#D1D0C5"),
		Incorrect:   lipgloss.Color("#CA4754"),
		Pending:     lipgloss.Color("#646669"),
		CurrentWord: lipgloss.Color("#D1D0C5"),
		Muted:       lipgloss.Color("#4A4A4A"),
	},
}

// ThemeFor returns the named theme, falling back to classic.
func ThemeFor(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["classic"]
}

type palette struct {
	correct     lipgloss.Style
	incorrect   lipgloss.Style
	pending     lipgloss.Style
	currentWord lipgloss.Style
	cursor      lipgloss.Style
	title       lipgloss.Style
	card        lipgloss.Style
	cardTitle   lipgloss.Style
	cardValue   lipgloss.Style
	banner      lipgloss.Style
	footer      lipgloss.Style
}

func (t Theme) palette() palette {
	pending := lipgloss.NewStyle().Foreground(t.Pending)
	return palette{
		correct:     lipgloss.NewStyle().Foreground(t.Correct),
		incorrect:   lipgloss.NewStyle().Foreground(t.Incorrect),
		pending:     pending,
		currentWord: lipgloss.NewStyle().Foreground(t.CurrentWord),
		cursor:      pending.Underline(true),
		title:       lipgloss.NewStyle().Foreground(t.Accent).Bold(true).MarginBottom(1),
		card: lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(t.Accent).
			Align(lipgloss.Center),
		cardTitle: lipgloss.NewStyle().Foreground(t.Accent),
		cardValue: lipgloss.NewStyle().Foreground(t.Correct).Bold(true),
		banner: lipgloss.NewStyle().
			Foreground(t.Accent).
			Border(lipgloss.DoubleBorder(), true).
			BorderForeground(t.Accent).
			Padding(0, 2).
			Align(lipgloss.Center),
		footer: lipgloss.NewStyle().Foreground(t.Pending),
	}
}
