package screener

import (
	"math"
	"sort"

	"StockAI/internal/domain/models"
)

const signalWeight = 0.5

// RelevanceScore computes the composite closeness-plus-signal score for one
// matched record. For each filtered bound the score rewards proximity to the
// threshold, normalized by the bound's magnitude to avoid scale bias; the
// record's signal label adds priority*0.5 on top.
func RelevanceScore(record models.StockRecord, spec models.FilterSpec) float64 {
	score := 0.0
	for key, cond := range spec {
		v, ok := record.Number(key)
		if !ok {
			continue
		}
		if cond.Min != nil && v >= *cond.Min {
			score += closeness(v, *cond.Min)
		}
		if cond.Max != nil && v <= *cond.Max {
			score += closeness(v, *cond.Max)
		}
	}

	signal := models.SignalNeutral
	if s, ok := record.Text(models.KeyAISignal); ok {
		signal = models.Signal(s)
	}
	score += float64(signal.Priority()) * signalWeight
	return score
}

// closeness is max(0, 1 - |v-bound|/max(bound, 1)), clipped to non-negative.
func closeness(v, bound float64) float64 {
	denom := bound
	if denom < 1 {
		denom = 1
	}
	c := 1 - math.Abs(v-bound)/denom
	if c < 0 {
		return 0
	}
	return c
}

// Rank orders matched records by descending relevance. The sort is stable, so
// ties keep their collection order.
func Rank(records []models.StockRecord, spec models.FilterSpec) {
	scores := make([]float64, len(records))
	for i, r := range records {
		scores[i] = RelevanceScore(r, spec)
	}
	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	ranked := make([]models.StockRecord, len(records))
	for i, idx := range order {
		ranked[i] = records[idx]
	}
	copy(records, ranked)
}
