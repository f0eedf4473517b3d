package game

import "github.com/verte-zerg/kanamatch/internal/kana"

// CharacterStats tracks the player's record for one kana.
type CharacterStats struct {
	// Attempts counts matched triples.
	Attempts int
	// Incorrect counts tiles of this kana rejected as mismatches.
	Incorrect int
	// TotalResponseMs sums the time from the first selection of an attempt to its match.
	TotalResponseMs int64
}

// AvgTimeMs returns the mean response time, 0 without attempts.
func (c CharacterStats) AvgTimeMs() float64 {
	if c.Attempts == 0 {
		return 0
	}
	return float64(c.TotalResponseMs) / float64(c.Attempts)
}

// Accuracy returns matches over matches plus rejections; 1 when unseen.
func (c CharacterStats) Accuracy() float64 {
	total := c.Attempts + c.Incorrect
	if total == 0 {
		return 1
	}
	return float64(c.Attempts) / float64(total)
}

// StatsTable holds CharacterStats for every kana index.
type StatsTable [kana.Count]CharacterStats

// Seen returns the indices with any recorded activity.
func (t *StatsTable) Seen() []int {
	var out []int
	for i, s := range t {
		if s.Attempts > 0 || s.Incorrect > 0 {
			out = append(out, i)
		}
	}
	return out
}
