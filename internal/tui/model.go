// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/monkeytui/internal/logging"
	"github.com/verte-zerg/monkeytui/internal/model"
	"github.com/verte-zerg/monkeytui/internal/passage"
	"github.com/verte-zerg/monkeytui/internal/session"
	statsPkg "github.com/verte-zerg/monkeytui/internal/stats"
	"github.com/verte-zerg/monkeytui/internal/variant"
)

// tickInterval is how often elapsed time is refreshed while typing.
const tickInterval = 100 * time.Millisecond

// ResultStore persists finished attempts and serves history for the footer.
type ResultStore interface {
	InsertResult(ctx context.Context, res model.Result, chars []model.CharStats) (int64, error)
	ListResults(ctx context.Context, cfg model.StatsConfig) ([]model.ResultAggregate, error)
}

// tickMsg carries the attempt id so ticks scheduled for a discarded attempt
// are dropped instead of touching the new one.
type tickMsg struct {
	id string
	at time.Time
}

func tickCmd(id string) tea.Cmd {
	return tea.Tick(tickInterval, func(at time.Time) tea.Msg {
		return tickMsg{id: id, at: at}
	})
}

// Option configures a Model.
type Option func(*Model)

// WithClock overrides the clock used for session start and end times.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogger sets the logger for persistence failures and attempt events.
func WithLogger(log *slog.Logger) Option {
	return func(m *Model) {
		if log != nil {
			m.log = log
		}
	}
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	variant variant.Variant
	palette palette
	theme   Theme
	store   ResultStore
	catalog *passage.Catalog
	index   int
	tracker *session.Tracker
	now     func() time.Time
	log     *slog.Logger

	keys     keyMap
	help     help.Model
	progress progress.Model

	width  int
	height int

	ticking bool
	saved   bool

	lastWPM  int
	lastAcc  int
	hasLast  bool
	allCount int
	allWPM   float64
	allAcc   float64
}

// NewModel constructs a typing TUI model. st may be nil to disable history.
func NewModel(v variant.Variant, catalog *passage.Catalog, st ResultStore, opts ...Option) *Model {
	theme := ThemeFor(v.Theme)
	m := &Model{
		variant: v,
		theme:   theme,
		palette: theme.palette(),
		store:   st,
		catalog: catalog,
		now:     time.Now,
		log:     logging.Discard(),
		keys:    newKeyMap(v.TextMenu && catalog.Len() > 1),
		help:    help.New(),
		progress: progress.New(
			progress.WithSolidFill(string(theme.Accent)),
			progress.WithoutPercentage(),
		),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.tracker = session.New(v.Policy, session.WithClock(func() time.Time { return m.now() }))
	m.selectText(0)
	m.loadHistory()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle("monkeytui")
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(10, min(contentWidthFor(msg.Width), 80))
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		return m, m.handleTick(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

// Snapshot returns the current session state.
func (m *Model) Snapshot() session.Snapshot {
	return m.tracker.Snapshot()
}

// Passage returns the passage being typed.
func (m *Model) Passage() passage.Passage {
	return m.catalog.At(m.index)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reset):
		m.selectText(m.index)
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.changeText(m.index + 1)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.changeText(m.index - 1)
		return m, nil
	case key.Matches(msg, m.keys.Random):
		m.changeText(m.catalog.Random(m.index))
		return m, nil
	}
	candidate, ok := m.candidateFor(msg)
	if !ok {
		return m, nil
	}
	return m, m.submit(candidate)
}

// candidateFor turns a key press into the proposed typed text.
func (m *Model) candidateFor(msg tea.KeyMsg) (string, bool) {
	typed := m.tracker.Typed()
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		if len(typed) == 0 {
			return "", false
		}
		return string(typed[:len(typed)-1]), true
	case tea.KeySpace:
		return string(typed) + " ", true
	case tea.KeyRunes:
		return string(typed) + string(msg.Runes), true
	default:
		return "", false
	}
}

func (m *Model) submit(candidate string) tea.Cmd {
	if !m.tracker.Submit(candidate) {
		return nil
	}
	if m.tracker.Complete() {
		m.ticking = false
		m.finishAttempt()
		return nil
	}
	if m.tracker.Active() && !m.ticking {
		m.ticking = true
		m.log.Debug("attempt started", "attempt", m.tracker.ID(), "passage", m.Passage().Title)
		return tickCmd(m.tracker.ID())
	}
	return nil
}

func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	if msg.id != m.tracker.ID() {
		return nil
	}
	if !m.tracker.Tick(msg.at) {
		m.ticking = false
		return nil
	}
	return tickCmd(msg.id)
}

// changeText switches passages. Switching is refused mid-attempt.
func (m *Model) changeText(index int) {
	if m.tracker.Active() {
		return
	}
	m.selectText(index)
}

func (m *Model) selectText(index int) {
	m.index = m.catalog.Index(index)
	m.tracker.SelectText(m.catalog.At(m.index).Text)
	m.ticking = false
	m.saved = false
}

func (m *Model) finishAttempt() {
	if m.saved {
		return
	}
	m.saved = true
	snap := m.tracker.Snapshot()
	endedAt := m.now()
	res := model.Result{
		AttemptID:  snap.ID,
		StartedAt:  snap.StartedAt,
		EndedAt:    endedAt,
		Variant:    m.variant.Name,
		Passage:    m.Passage().Title,
		PassageLen: len(m.tracker.Reference()),
		WPM:        snap.WPM,
		Accuracy:   snap.Accuracy,
		Words:      snap.WordsTyped,
		Errors:     snap.ErrorCount,
		DurationMs: endedAt.Sub(snap.StartedAt).Milliseconds(),
	}
	m.recordHistory(res.WPM, res.Accuracy)
	m.log.Info("attempt complete",
		"attempt", res.AttemptID,
		"variant", res.Variant,
		"wpm", res.WPM,
		"accuracy", res.Accuracy,
		"errors", res.Errors,
	)
	if m.store == nil {
		return
	}

	counts := session.CharCounts(m.tracker.Typed(), m.tracker.Reference())
	chars := make([]model.CharStats, 0, len(counts))
	for _, c := range counts {
		chars = append(chars, model.CharStats{
			Char:      string(c.Char),
			Correct:   c.Correct,
			Incorrect: c.Incorrect,
		})
	}
	if _, err := m.store.InsertResult(context.Background(), res, chars); err != nil {
		m.log.Error("failed to save result", "attempt", res.AttemptID, "err", err)
	}
}

func (m *Model) loadHistory() {
	if m.store == nil {
		return
	}
	results, err := m.store.ListResults(context.Background(), model.StatsConfig{Variant: m.variant.Name})
	if err != nil {
		m.log.Error("failed to load history", "err", err)
		return
	}
	if len(results) == 0 {
		return
	}
	last := results[len(results)-1]
	m.lastWPM = last.WPM
	m.lastAcc = last.Accuracy
	m.hasLast = true
	summary := statsPkg.Summarize(results)
	m.allCount = summary.Attempts
	m.allWPM = summary.AvgWPM
	m.allAcc = summary.AvgAccuracy
}

func (m *Model) recordHistory(wpm, acc int) {
	m.lastWPM = wpm
	m.lastAcc = acc
	m.hasLast = true
	n := float64(m.allCount)
	m.allWPM = (m.allWPM*n + float64(wpm)) / (n + 1)
	m.allAcc = (m.allAcc*n + float64(acc)) / (n + 1)
	m.allCount++
}
