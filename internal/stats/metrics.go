// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"

	"github.com/verte-zerg/kanamatch/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary holds headline figures over a set of games.
type Summary struct {
	Games       int
	AvgMs       float64
	BestMs      int64
	AvgAccuracy float64
	Mistakes    int
}

// GameAccuracy returns matched attempts over all attempts and mistakes of a game.
func GameAccuracy(s model.SessionAggregate) float64 {
	return ratio(s.Attempts, s.Incorrect)
}

// KanaAccuracy returns attempts over attempts plus mistakes; unseen kana count as 1.
func KanaAccuracy(agg model.KanaAggregate) float64 {
	return ratio(agg.Attempts, agg.Incorrect)
}

// KanaAvgMs returns the mean response time per matched attempt.
func KanaAvgMs(agg model.KanaAggregate) float64 {
	if agg.Attempts == 0 {
		return 0
	}
	return float64(agg.ResponseMs) / float64(agg.Attempts)
}

func ratio(attempts, incorrect int) float64 {
	den := attempts + incorrect
	if den == 0 {
		return 1
	}
	return float64(attempts) / float64(den)
}

// Summarize computes headline figures for the games.
func Summarize(sessions []model.SessionAggregate) Summary {
	if len(sessions) == 0 {
		return Summary{}
	}
	best := lo.MinBy(sessions, func(a, b model.SessionAggregate) bool {
		return a.DurationMs < b.DurationMs
	})
	return Summary{
		Games: len(sessions),
		AvgMs: lo.MeanBy(sessions, func(s model.SessionAggregate) float64 {
			return float64(s.DurationMs)
		}),
		BestMs:      best.DurationMs,
		AvgAccuracy: lo.MeanBy(sessions, GameAccuracy),
		Mistakes:    lo.SumBy(sessions, func(s model.SessionAggregate) int { return s.Incorrect }),
	}
}

// FormatDuration renders milliseconds as m:ss.t.
func FormatDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	tenths := ms / 100
	return fmt.Sprintf("%d:%02d.%d", tenths/600, (tenths/10)%60, tenths%10)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		out[i] = sum / float64(min(i+1, window))
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lowest, highest := lo.Min(values), lo.Max(values)
	if math.Abs(highest-lowest) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	top := len(sparkChars) - 1
	var b strings.Builder
	for _, v := range values {
		idx := int(math.Round((v - lowest) / (highest - lowest) * float64(top)))
		b.WriteByte(sparkChars[max(0, min(idx, top))])
	}
	return b.String()
}
