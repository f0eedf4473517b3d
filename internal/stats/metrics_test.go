package stats

import (
	"testing"

	"github.com/verte-zerg/kanamatch/internal/model"
)

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if got := MovingAverage([]float64{1, 2}, 1); got[1] != 2 {
		t.Fatalf("window 1 should copy, got %v", got)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 9}); got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{3, 3, 3}); got != "+++" {
		t.Fatalf("flat sparkline should use the middle glyph, got %q", got)
	}
}

func TestSummarize(t *testing.T) {
	sum := Summarize([]model.SessionAggregate{
		{DurationMs: 60000, Attempts: 46, Incorrect: 0},
		{DurationMs: 90000, Attempts: 46, Incorrect: 46},
	})
	if sum.Games != 2 || sum.BestMs != 60000 || sum.AvgMs != 75000 || sum.Mistakes != 46 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	if sum.AvgAccuracy != 0.75 {
		t.Fatalf("unexpected accuracy %f", sum.AvgAccuracy)
	}
	if Summarize(nil).Games != 0 {
		t.Fatalf("expected empty summary")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[int64]string{
		0:      "0:00.0",
		1250:   "0:01.2",
		83400:  "1:23.4",
		600000: "10:00.0",
		-5:     "0:00.0",
	}
	for ms, want := range tests {
		if got := FormatDuration(ms); got != want {
			t.Fatalf("FormatDuration(%d) = %q, want %q", ms, got, want)
		}
	}
}

func TestKanaMetrics(t *testing.T) {
	agg := model.KanaAggregate{Attempts: 3, Incorrect: 1, ResponseMs: 3300}
	if KanaAccuracy(agg) != 0.75 || KanaAvgMs(agg) != 1100 {
		t.Fatalf("unexpected kana metrics %f %f", KanaAccuracy(agg), KanaAvgMs(agg))
	}
	if KanaAccuracy(model.KanaAggregate{}) != 1 || KanaAvgMs(model.KanaAggregate{}) != 0 {
		t.Fatalf("unseen kana should be neutral")
	}
}
