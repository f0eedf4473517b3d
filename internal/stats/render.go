package stats

import (
	"fmt"
	"io"

	"github.com/verte-zerg/kanamatch/internal/kana"
	"github.com/verte-zerg/kanamatch/internal/model"
)

// KanaRow is one line of the per-kana table.
type KanaRow struct {
	Entry     kana.Entry
	Accuracy  float64
	AvgMs     float64
	Attempts  int
	Incorrect int
}

// Cells formats the row for table output.
func (r KanaRow) Cells() []string {
	return []string{
		r.Entry.Label(),
		fmt.Sprintf("%.1f%%", r.Accuracy*100),
		fmt.Sprintf("%.0f", r.AvgMs),
		fmt.Sprintf("%d", r.Attempts),
		fmt.Sprintf("%d", r.Incorrect),
	}
}

// KanaHeaders are the column titles matching KanaRow.Cells.
var KanaHeaders = []string{"Kana", "Accuracy", "Avg ms", "Matched", "Mistakes"}

// KanaRows converts aggregates into table rows, weakest first.
func KanaRows(aggs []model.KanaAggregate) []KanaRow {
	sorted := append([]model.KanaAggregate(nil), aggs...)
	sortWeakest(sorted)
	rows := make([]KanaRow, 0, len(sorted))
	for _, agg := range sorted {
		entry, ok := kana.Lookup(agg.KanaIndex)
		if !ok {
			continue
		}
		rows = append(rows, KanaRow{
			Entry:     entry,
			Accuracy:  KanaAccuracy(agg),
			AvgMs:     KanaAvgMs(agg),
			Attempts:  agg.Attempts,
			Incorrect: agg.Incorrect,
		})
	}
	return rows
}

// RenderSummary prints headline figures for the games.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No games found.")
		return err
	}
	sum := Summarize(sessions)
	_, err := fmt.Fprintf(w, "Summary\nGames: %d\nAvg time: %s\nBest time: %s\nAvg accuracy: %.2f%%\nMistakes: %d\n\n",
		sum.Games,
		FormatDuration(int64(sum.AvgMs)),
		FormatDuration(sum.BestMs),
		sum.AvgAccuracy*100,
		sum.Mistakes,
	)
	return err
}

// RenderCurvesWithSize prints time and accuracy learning curves sized to a total width.
func RenderCurvesWithSize(w io.Writer, sessions []model.SessionAggregate, window, totalWidth, height int, useColor bool) error {
	if len(sessions) == 0 {
		return nil
	}
	secs := make([]float64, len(sessions))
	accs := make([]float64, len(sessions))
	for i, s := range sessions {
		secs[i] = float64(s.DurationMs) / 1000
		accs[i] = GameAccuracy(s) * 100
	}
	return PlotSeriesWithColor(w, "Learning Curves", []Series{
		{Name: "Time (s)", Values: MovingAverage(secs, window)},
		{Name: "Accuracy (%)", Values: MovingAverage(accs, window)},
	}, plotWidth(totalWidth), height, useColor)
}

// RenderKanaTable prints per-kana aggregates, weakest first.
func RenderKanaTable(w io.Writer, aggs []model.KanaAggregate) error {
	rows := KanaRows(aggs)
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No kana stats found.")
		return err
	}
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = r.Cells()
	}
	if _, err := fmt.Fprintln(w, "Per-Kana (Windowed)"); err != nil {
		return err
	}
	for _, line := range formatTable(KanaHeaders, cells, map[int]bool{1: true, 2: true, 3: true, 4: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// RenderKanaCurvesWithSize prints accuracy and response curves for each kana.
// Games where the kana was not played are skipped.
func RenderKanaCurvesWithSize(w io.Writer, sessions []model.SessionAggregate, perSession map[string]map[int]model.KanaAggregate, kanaIndices []int, window, totalWidth, height int, useColor bool) error {
	if len(kanaIndices) == 0 || len(sessions) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Per-Kana Curves"); err != nil {
		return err
	}
	for _, k := range kanaIndices {
		entry, ok := kana.Lookup(k)
		if !ok {
			continue
		}
		var accs, times []float64
		for _, s := range sessions {
			agg, ok := perSession[s.SessionID][k]
			if !ok {
				continue
			}
			accs = append(accs, KanaAccuracy(agg)*100)
			times = append(times, KanaAvgMs(agg))
		}
		if err := PlotSeriesWithColor(w, "Kana "+entry.Label(), []Series{
			{Name: "Accuracy (%)", Values: MovingAverage(accs, window)},
			{Name: "Avg ms", Values: MovingAverage(times, window)},
		}, plotWidth(totalWidth), height, useColor); err != nil {
			return err
		}
	}
	return nil
}

func plotWidth(totalWidth int) int {
	if totalWidth <= 0 {
		return 0
	}
	return PlotWidthFor(totalWidth)
}
