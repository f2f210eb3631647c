package stats

import (
	"context"
	"io"

	"github.com/verte-zerg/monkeytui/internal/model"
)

// Source is the read side of the result store.
type Source interface {
	ListResults(ctx context.Context, cfg model.StatsConfig) ([]model.ResultAggregate, error)
	CharAggregatesFor(ctx context.Context, resultIDs []int64) ([]model.CharAggregate, error)
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Results        []model.ResultAggregate
	WindowIDs      []int64
	CharAggsAll    []model.CharAggregate
	CharAggsWindow []model.CharAggregate
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, src Source, cfg model.StatsConfig) (Report, error) {
	results, err := src.ListResults(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	allIDs := resultIDs(results)
	windowIDs := lastResultIDs(results, cfg.Window)
	charAggsAll, err := src.CharAggregatesFor(ctx, allIDs)
	if err != nil {
		return Report{}, err
	}
	charAggsWindow, err := src.CharAggregatesFor(ctx, windowIDs)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Results:        results,
		WindowIDs:      windowIDs,
		CharAggsAll:    charAggsAll,
		CharAggsWindow: charAggsWindow,
	}, nil
}

// Render writes the full text report.
func (r Report) Render(w io.Writer, cfg model.StatsConfig, width int, useColor bool) error {
	if err := RenderSummary(w, r.Results); err != nil {
		return err
	}
	if len(r.Results) == 0 {
		return nil
	}
	if err := RenderCurve(w, r.Results, cfg.Window, width, useColor); err != nil {
		return err
	}
	return RenderCharTable(w, r.CharAggsWindow, cfg.Top)
}

func resultIDs(results []model.ResultAggregate) []int64 {
	ids := make([]int64, len(results))
	for i, r := range results {
		ids[i] = r.ResultID
	}
	return ids
}

func lastResultIDs(results []model.ResultAggregate, window int) []int64 {
	if window <= 0 || len(results) <= window {
		return resultIDs(results)
	}
	return resultIDs(results[len(results)-window:])
}
