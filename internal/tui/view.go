package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/monkeytui/internal/session"
)

// View implements tea.Model.
func (m *Model) View() string {
	snap := m.tracker.Snapshot()
	target := m.tracker.Reference()
	if len(target) == 0 {
		return ""
	}
	typed := m.tracker.Typed()
	cursorIndex := -1
	if !snap.Complete() && len(typed) < len(target) {
		cursorIndex = len(typed)
	}
	styled := buildStyledRunes(m.palette, target, typed, cursorIndex)

	text := renderStyledRunes(styled)
	if m.width > 0 {
		width := contentWidthFor(m.width)
		text = lipgloss.NewStyle().Width(width).Render(wrapStyledRunes(styled, width))
	}

	sections := []string{
		m.palette.title.Render(m.theme.Title),
		m.renderCards(snap),
		"",
		text,
		"",
		m.progress.ViewAs(m.tracker.Progress()),
	}
	if snap.Complete() {
		sections = append(sections, "", m.renderBanner(snap))
	}
	sections = append(sections, "", m.help.View(m.keys))
	content := lipgloss.JoinVertical(lipgloss.Center, sections...)

	if m.width == 0 || m.height == 0 {
		return content + "\n" + m.renderFooter()
	}
	footer := m.renderFooter()
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderCards(snap session.Snapshot) string {
	cards := []string{
		m.card("WPM", fmt.Sprintf("%d", snap.WPM)),
		m.card("ACCURACY", fmt.Sprintf("%d%%", snap.Accuracy)),
		m.card("WORDS", fmt.Sprintf("%d", snap.WordsTyped)),
	}
	if m.variant.ShowErrors {
		cards = append(cards, m.card("ERRORS", fmt.Sprintf("%d", snap.ErrorCount)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m *Model) card(title, value string) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		m.palette.cardTitle.Render(title),
		m.palette.cardValue.Render(value),
	)
	return m.palette.card.Width(12).Render(body)
}

func (m *Model) renderBanner(snap session.Snapshot) string {
	parts := []string{
		fmt.Sprintf("Final WPM: %d", snap.WPM),
		fmt.Sprintf("Accuracy: %d%%", snap.Accuracy),
		fmt.Sprintf("Words: %d", snap.WordsTyped),
	}
	if m.variant.ShowErrors {
		parts = append(parts, fmt.Sprintf("Errors: %d", snap.ErrorCount))
	}
	return m.palette.banner.Render("Test complete!\n" + strings.Join(parts, " | "))
}

func (m *Model) renderFooter() string {
	p := m.Passage()
	segments := []string{
		fmt.Sprintf("%s (%d/%d)", p.Title, m.index+1, m.catalog.Len()),
		fmt.Sprintf("Progress %d%%", int(m.tracker.Progress()*100)),
	}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %d WPM · %d%%", m.lastWPM, m.lastAcc))
	}
	if m.allCount > 0 {
		segments = append(segments, fmt.Sprintf("All-time %.1f WPM · %.1f%%", m.allWPM, m.allAcc))
	}
	return m.palette.footer.Render(strings.Join(segments, "  "))
}

func contentWidthFor(width int) int {
	return max(1, int(float64(width)*0.70))
}
