package stats

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/monkeytui/internal/model"
)

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected averages (-want +got):\n%s", diff)
	}
}

func TestSparklineFlat(t *testing.T) {
	if got := Sparkline([]float64{3, 3, 3}); got != "+++" {
		t.Fatalf("unexpected sparkline %q", got)
	}
}

func TestSparklineRange(t *testing.T) {
	got := Sparkline([]float64{0, 100})
	if got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
}

func TestResample(t *testing.T) {
	got := Resample([]float64{1, 3, 5, 7}, 2)
	if diff := cmp.Diff([]float64{2, 6}, got); diff != "" {
		t.Fatalf("unexpected resample (-want +got):\n%s", diff)
	}
	if len(Resample([]float64{1, 2}, 10)) != 2 {
		t.Fatalf("expected short series to stay unchanged")
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize([]model.ResultAggregate{
		{WPM: 40, Accuracy: 90, Errors: 3},
		{WPM: 60, Accuracy: 100},
	})
	want := Summary{Attempts: 2, AvgWPM: 50, BestWPM: 60, AvgAccuracy: 95, TotalErrors: 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected summary (-want +got):\n%s", diff)
	}
}

func TestSelectWeakChars(t *testing.T) {
	aggs := []model.CharAggregate{
		{Char: "a", Correct: 9, Incorrect: 1},
		{Char: "b", Correct: 1, Incorrect: 1},
		{Char: "c", Correct: 5},
		{Char: "d", Correct: 3, Incorrect: 3},
	}
	got := SelectWeakChars(aggs, 2)
	want := map[rune]struct{}{'b': {}, 'd': {}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected weak set (-want +got):\n%s", diff)
	}
	if len(SelectWeakChars(aggs, 0)) != 3 {
		t.Fatalf("expected every missed char when top is 0")
	}
}
