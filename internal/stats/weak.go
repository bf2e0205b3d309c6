package stats

import (
	"sort"

	"github.com/verte-zerg/typearena/internal/model"
)

// WeakestChars returns up to top aggregates ordered by lowest accuracy.
// Ties fall back to slower average latency, then character order.
func WeakestChars(aggs []model.CharAggregate, top int) []model.CharAggregate {
	if len(aggs) == 0 {
		return nil
	}
	candidates := make([]model.CharAggregate, len(aggs))
	copy(candidates, aggs)
	sort.Slice(candidates, func(i, j int) bool {
		ai := charAccuracy(candidates[i])
		aj := charAccuracy(candidates[j])
		if ai != aj {
			return ai < aj
		}
		li, lj := avgLatency(candidates[i]), avgLatency(candidates[j])
		if li != lj {
			return li > lj
		}
		return candidates[i].Char < candidates[j].Char
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	return candidates[:top]
}

func charAccuracy(agg model.CharAggregate) float64 {
	total := agg.Correct + agg.Incorrect
	if total == 0 {
		return 1.0
	}
	return float64(agg.Correct) / float64(total)
}

func avgLatency(agg model.CharAggregate) float64 {
	if agg.LatencyCount == 0 {
		return 0
	}
	return float64(agg.LatencySumMs) / float64(agg.LatencyCount)
}
