// Package model defines shared data structures.
package model

import "time"

// Config defines typing test settings.
type Config struct {
	Variant    string
	TextsPath  string
	Words      int
	Wordlist   string
	CapsPct    float64
	PunctPct   float64
	PunctSet   string
	FocusWeak  bool
	WeakTop    int
	WeakFactor float64
	WeakWindow int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Variant string
	Since   *time.Time
	Last    int
	Window  int
	Top     int
}

// Result captures a completed attempt.
type Result struct {
	AttemptID  string
	StartedAt  time.Time
	EndedAt    time.Time
	Variant    string
	Passage    string
	PassageLen int
	WPM        int
	Accuracy   int
	Words      int
	Errors     int
	DurationMs int64
}

// CharStats stores per-character counts for an attempt.
type CharStats struct {
	Char      string
	Correct   int
	Incorrect int
}

// CharAggregate aggregates character stats across attempts.
type CharAggregate struct {
	Char      string
	Correct   int
	Incorrect int
}

// ResultAggregate summarizes a stored attempt for reporting.
type ResultAggregate struct {
	ResultID   int64
	EndedAt    time.Time
	Variant    string
	WPM        int
	Accuracy   int
	Errors     int
	DurationMs int64
}
