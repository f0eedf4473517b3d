package stats

import (
	"sort"

	"github.com/verte-zerg/kanamatch/internal/model"
)

// TopKanaByMistakes returns the n kana with the most mistakes, breaking ties by
// number of attempts.
func TopKanaByMistakes(aggs []model.KanaAggregate, n int) []int {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	items := append([]model.KanaAggregate(nil), aggs...)
	sort.Slice(items, func(i, j int) bool {
		if items[i].Incorrect != items[j].Incorrect {
			return items[i].Incorrect > items[j].Incorrect
		}
		if items[i].Attempts != items[j].Attempts {
			return items[i].Attempts > items[j].Attempts
		}
		return items[i].KanaIndex < items[j].KanaIndex
	})
	n = min(n, len(items))
	out := make([]int, n)
	for i := range out {
		out[i] = items[i].KanaIndex
	}
	return out
}
