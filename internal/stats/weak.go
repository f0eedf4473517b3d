package stats

import (
	"sort"

	"github.com/verte-zerg/kanamatch/internal/model"
)

// SelectWeakKana returns up to top kana indices ordered weakest first: lowest
// accuracy, then slowest average response.
func SelectWeakKana(aggs []model.KanaAggregate, top int) []int {
	candidates := make([]model.KanaAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Attempts > 0 || agg.Incorrect > 0 {
			candidates = append(candidates, agg)
		}
	}
	sortWeakest(candidates)
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	out := make([]int, top)
	for i := range out {
		out[i] = candidates[i].KanaIndex
	}
	return out
}

func sortWeakest(aggs []model.KanaAggregate) {
	sort.SliceStable(aggs, func(i, j int) bool {
		ai, aj := KanaAccuracy(aggs[i]), KanaAccuracy(aggs[j])
		if ai != aj {
			return ai < aj
		}
		ti, tj := KanaAvgMs(aggs[i]), KanaAvgMs(aggs[j])
		if ti != tj {
			return ti > tj
		}
		return aggs[i].KanaIndex < aggs[j].KanaIndex
	})
}
