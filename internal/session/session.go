// Package session implements the typing session state machine.
package session

import (
	"time"

	"github.com/google/uuid"
)

// InputPolicy controls which candidate edits are accepted.
type InputPolicy int

const (
	// InputFree accepts any candidate that fits inside the reference text.
	InputFree InputPolicy = iota
	// InputStrict also rejects edits that grow the typed text by more than one character.
	InputStrict
)

// CompletionRule decides when a session is finished.
type CompletionRule int

const (
	// CompleteExact finishes when the typed text equals the reference text.
	CompleteExact CompletionRule = iota
	// CompleteLength finishes when the typed text is as long as the reference text.
	CompleteLength
)

// Policy combines the input and completion rules of a variant.
type Policy struct {
	Input      InputPolicy
	Completion CompletionRule
}

// State is the lifecycle position of a session.
type State int

const (
	StateIdle State = iota
	StateActive
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Snapshot is a read-only copy of the session for display and persistence.
type Snapshot struct {
	ID            string
	ReferenceText string
	TypedText     string
	StartedAt     time.Time
	Elapsed       time.Duration
	WPM           int
	Accuracy      int
	WordsTyped    int
	CorrectChars  int
	ErrorCount    int
	State         State
}

// Active reports whether the session is between first keystroke and completion.
func (s Snapshot) Active() bool {
	return s.State == StateActive
}

// Complete reports whether the reference text has been reproduced.
func (s Snapshot) Complete() bool {
	return s.State == StateComplete
}

// ElapsedMs returns the elapsed time in milliseconds.
func (s Snapshot) ElapsedMs() int64 {
	return s.Elapsed.Milliseconds()
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the clock used to stamp the session start.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// WithIDFunc overrides the attempt id generator.
func WithIDFunc(newID func() string) Option {
	return func(t *Tracker) {
		if newID != nil {
			t.newID = newID
		}
	}
}

// Tracker owns one typing attempt against one reference text. It is not safe
// for concurrent use; callers deliver edits and ticks from a single loop.
type Tracker struct {
	policy Policy
	now    func() time.Time
	newID  func() string

	id        string
	reference []rune
	typed     []rune

	startedAt time.Time
	elapsed   time.Duration
	active    bool
	complete  bool

	wpm      int
	accuracy int
	words    int
	correct  int
	errors   int
}

// New returns an idle tracker with an empty reference text.
func New(policy Policy, opts ...Option) *Tracker {
	t := &Tracker{
		policy: policy,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.SelectText("")
	return t
}

// Policy returns the rules the tracker enforces.
func (t *Tracker) Policy() Policy {
	return t.policy
}

// SelectText replaces the reference text and starts a fresh attempt.
func (t *Tracker) SelectText(text string) {
	t.id = t.newID()
	t.reference = []rune(text)
	t.typed = nil
	t.startedAt = time.Time{}
	t.elapsed = 0
	t.active = false
	t.complete = false
	t.wpm = 0
	t.accuracy = InitialAccuracy
	t.words = 0
	t.correct = 0
	t.errors = 0
}

// Reset starts a fresh attempt on the current reference text.
func (t *Tracker) Reset() {
	t.SelectText(string(t.reference))
}

// Submit proposes a new value for the typed text. It returns false when the
// candidate is rejected, in which case the session is unchanged.
func (t *Tracker) Submit(candidate string) bool {
	if t.complete {
		return false
	}
	runes := []rune(candidate)
	if len(runes) > len(t.reference) {
		return false
	}
	if t.policy.Input == InputStrict && len(runes) > len(t.typed)+1 {
		return false
	}

	t.typed = runes
	if len(runes) > 0 && t.startedAt.IsZero() {
		t.startedAt = t.now()
		t.active = true
	}
	t.recompute()

	if t.active && t.matched() {
		t.active = false
		t.complete = true
	}
	return true
}

// Tick refreshes elapsed time and the time-dependent metrics. It returns true
// while the session stays active, which is the signal to schedule the next tick.
func (t *Tracker) Tick(now time.Time) bool {
	if !t.active || t.complete {
		return false
	}
	elapsed := now.Sub(t.startedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	t.elapsed = elapsed
	t.recompute()
	return true
}

// ID returns the attempt id. It changes on every reset and text change.
func (t *Tracker) ID() string {
	return t.id
}

// State returns the lifecycle position.
func (t *Tracker) State() State {
	switch {
	case t.complete:
		return StateComplete
	case t.active:
		return StateActive
	default:
		return StateIdle
	}
}

// Active reports whether ticks are still wanted.
func (t *Tracker) Active() bool {
	return t.active && !t.complete
}

// Complete reports whether the attempt is finished.
func (t *Tracker) Complete() bool {
	return t.complete
}

// Reference returns the reference text as runes. The slice must not be modified.
func (t *Tracker) Reference() []rune {
	return t.reference
}

// Typed returns the typed text as runes. The slice must not be modified.
func (t *Tracker) Typed() []rune {
	return t.typed
}

// Snapshot returns a copy of the current session.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		ID:            t.id,
		ReferenceText: string(t.reference),
		TypedText:     string(t.typed),
		StartedAt:     t.startedAt,
		Elapsed:       t.elapsed,
		WPM:           t.wpm,
		Accuracy:      t.accuracy,
		WordsTyped:    t.words,
		CorrectChars:  t.correct,
		ErrorCount:    t.errors,
		State:         t.State(),
	}
}

// Progress returns the typed share of the reference text in [0,1].
func (t *Tracker) Progress() float64 {
	if len(t.reference) == 0 {
		return 0
	}
	return float64(len(t.typed)) / float64(len(t.reference))
}

// CurrentWordIndex returns the index of the word under the cursor.
func (t *Tracker) CurrentWordIndex() int {
	idx := 0
	for _, r := range t.typed {
		if r == ' ' {
			idx++
		}
	}
	return idx
}

func (t *Tracker) recompute() {
	if len(t.typed) == 0 {
		t.words = 0
		t.correct = 0
		t.errors = 0
		t.accuracy = InitialAccuracy
		return
	}
	t.words = CountWords(string(t.typed))
	// WPM keeps its previous value until the first tick has measured time.
	if wpm, ok := WPM(t.words, t.elapsed); ok {
		t.wpm = wpm
	}
	t.correct, t.errors = CompareRunes(t.typed, t.reference)
	if acc, ok := Accuracy(t.correct, len(t.typed)); ok {
		t.accuracy = acc
	}
}

func (t *Tracker) matched() bool {
	if len(t.typed) != len(t.reference) {
		return false
	}
	if t.policy.Completion == CompleteLength {
		return true
	}
	for i, r := range t.typed {
		if r != t.reference[i] {
			return false
		}
	}
	return true
}
