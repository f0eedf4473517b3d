package stats

import (
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"
)

type yamlReport struct {
	Games       int        `yaml:"games"`
	AvgTime     string     `yaml:"avg_time"`
	BestTime    string     `yaml:"best_time"`
	AvgAccuracy float64    `yaml:"avg_accuracy"`
	History     []yamlGame `yaml:"history"`
	Kana        []yamlKana `yaml:"kana,omitempty"`
}

type yamlGame struct {
	ID       string  `yaml:"id"`
	EndedAt  string  `yaml:"ended_at"`
	Time     string  `yaml:"time"`
	Score    int     `yaml:"score"`
	Accuracy float64 `yaml:"accuracy"`
	Mistakes int     `yaml:"mistakes"`
}

type yamlKana struct {
	Kana     string  `yaml:"kana"`
	Accuracy float64 `yaml:"accuracy"`
	AvgMs    float64 `yaml:"avg_ms"`
	Matched  int     `yaml:"matched"`
	Mistakes int     `yaml:"mistakes"`
}

// WriteYAML exports the report as YAML, kana weakest first.
func WriteYAML(w io.Writer, r Report) error {
	sum := Summarize(r.Sessions)
	out := yamlReport{
		Games:       sum.Games,
		AvgTime:     FormatDuration(int64(sum.AvgMs)),
		BestTime:    FormatDuration(sum.BestMs),
		AvgAccuracy: round(sum.AvgAccuracy, 4),
		History:     make([]yamlGame, 0, len(r.Sessions)),
	}
	for _, s := range r.Sessions {
		out.History = append(out.History, yamlGame{
			ID:       s.SessionID,
			EndedAt:  s.EndedAt.Format("2006-01-02T15:04:05Z07:00"),
			Time:     FormatDuration(s.DurationMs),
			Score:    s.Score,
			Accuracy: round(GameAccuracy(s), 4),
			Mistakes: s.Incorrect,
		})
	}
	for _, row := range KanaRows(r.KanaAggsWindow) {
		out.Kana = append(out.Kana, yamlKana{
			Kana:     row.Entry.Label(),
			Accuracy: round(row.Accuracy, 4),
			AvgMs:    round(row.AvgMs, 1),
			Matched:  row.Attempts,
			Mistakes: row.Incorrect,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode yaml report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush yaml report: %w", err)
	}
	return nil
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
