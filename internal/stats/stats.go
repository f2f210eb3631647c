// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/verte-zerg/monkeytui/internal/model"
)

const sparkChars = " .:-=+*#%@"

const (
	colorCyan  = "\x1b[36m"
	colorReset = "\x1b[0m"
)

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 || len(values) == 0 {
		copy(out, values)
		return out
	}
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		den := float64(i + 1)
		if i >= window {
			sum -= values[i-window]
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Resample shrinks values to at most width points by averaging buckets.
func Resample(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		return append([]float64(nil), values...)
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		start := i * len(values) / width
		end := (i + 1) * len(values) / width
		var sum float64
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

// Summary holds aggregate numbers for a set of results.
type Summary struct {
	Attempts    int
	AvgWPM      float64
	BestWPM     int
	AvgAccuracy float64
	TotalErrors int
}

// Summarize aggregates results.
func Summarize(results []model.ResultAggregate) Summary {
	s := Summary{Attempts: len(results)}
	if len(results) == 0 {
		return s
	}
	var wpmSum, accSum float64
	for _, r := range results {
		wpmSum += float64(r.WPM)
		accSum += float64(r.Accuracy)
		s.BestWPM = max(s.BestWPM, r.WPM)
		s.TotalErrors += r.Errors
	}
	count := float64(len(results))
	s.AvgWPM = wpmSum / count
	s.AvgAccuracy = accSum / count
	return s
}

// RenderSummary prints a summary block for results.
func RenderSummary(w io.Writer, results []model.ResultAggregate) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No attempts found.")
		return err
	}
	s := Summarize(results)
	lines := []string{
		"Summary",
		fmt.Sprintf("Attempts: %d", s.Attempts),
		fmt.Sprintf("Avg WPM: %.2f", s.AvgWPM),
		fmt.Sprintf("Best WPM: %d", s.BestWPM),
		fmt.Sprintf("Avg Accuracy: %.2f%%", s.AvgAccuracy),
		fmt.Sprintf("Total Errors: %d", s.TotalErrors),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurve prints WPM and accuracy sparklines smoothed over window and
// fitted to width columns.
func RenderCurve(w io.Writer, results []model.ResultAggregate, window, width int, useColor bool) error {
	if len(results) == 0 {
		return nil
	}
	wpms := make([]float64, len(results))
	accs := make([]float64, len(results))
	for i, r := range results {
		wpms[i] = float64(r.WPM)
		accs[i] = float64(r.Accuracy)
	}
	const label = "Accuracy "
	lineWidth := width - len(label)
	rows := []struct {
		name   string
		values []float64
	}{
		{name: "WPM", values: MovingAverage(wpms, window)},
		{name: "Accuracy", values: MovingAverage(accs, window)},
	}
	if _, err := fmt.Fprintf(w, "Learning Curve (window %d)\n", window); err != nil {
		return err
	}
	for _, row := range rows {
		line := Sparkline(Resample(row.values, lineWidth))
		if useColor {
			line = colorCyan + line + colorReset
		}
		last := row.values[len(row.values)-1]
		if _, err := fmt.Fprintf(w, "%-*s%s %.1f\n", len(label), row.name, line, last); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderCharTable prints per-character aggregates, weakest first, limited to
// top rows when top > 0.
func RenderCharTable(w io.Writer, aggs []model.CharAggregate, top int) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No character stats found.")
		return err
	}
	rows := append([]model.CharAggregate(nil), aggs...)
	sort.Slice(rows, func(i, j int) bool {
		ai, aj := accuracy(rows[i]), accuracy(rows[j])
		if ai == aj {
			return rows[i].Char < rows[j].Char
		}
		return ai < aj
	})
	if top > 0 && top < len(rows) {
		rows = rows[:top]
	}

	if _, err := fmt.Fprintln(w, "Per-Character"); err != nil {
		return err
	}
	tbl := newTable(
		column{title: "Char"},
		column{title: "Accuracy", right: true},
		column{title: "Correct", right: true},
		column{title: "Incorrect", right: true},
	)
	for _, r := range rows {
		tbl.add(
			charLabel(r.Char),
			fmt.Sprintf("%.2f%%", accuracy(r)*100),
			strconv.Itoa(r.Correct),
			strconv.Itoa(r.Incorrect),
		)
	}
	if err := tbl.write(w); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
