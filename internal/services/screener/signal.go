package screener

import "StockAI/internal/domain/models"

// Rule contributes Delta to the signal score when the metric is present and
// strictly beyond the configured threshold. Exactly one of Below/Above is set.
type Rule struct {
	Metric string
	Below  *float64
	Above  *float64
	Delta  int
}

func below(v float64) *float64 { return &v }
func above(v float64) *float64 { return &v }

// DefaultRules is the heuristic signal rule table. Thresholds are strict
// comparisons: a value exactly on the boundary contributes nothing.
var DefaultRules = []Rule{
	{Metric: models.KeyPERatio, Below: below(15), Delta: +2},
	{Metric: models.KeyPERatio, Above: above(30), Delta: -1},
	{Metric: models.KeyRevenueGrowth, Above: above(20), Delta: +2},
	{Metric: models.KeyRevenueGrowth, Below: below(5), Delta: -1},
	{Metric: models.KeyRSI14, Below: below(30), Delta: +1}, // oversold
	{Metric: models.KeyRSI14, Above: above(70), Delta: -1}, // overbought
	{Metric: models.KeyPriceChange3M, Above: above(15), Delta: +1},
	{Metric: models.KeyPriceChange3M, Below: below(-10), Delta: -1},
	{Metric: models.KeyReturnOnEquity, Above: above(15), Delta: +1},
	{Metric: models.KeyDividendYield, Above: above(2), Delta: +1},
}

// Applies reports whether the rule fires for the record.
func (r Rule) Applies(record models.StockRecord) bool {
	v, ok := record.Number(r.Metric)
	if !ok {
		return false
	}
	if r.Below != nil {
		return v < *r.Below
	}
	if r.Above != nil {
		return v > *r.Above
	}
	return false
}

// Score accumulates rule deltas for a record against DefaultRules.
func Score(record models.StockRecord) int {
	return ScoreWith(record, DefaultRules)
}

// ScoreWith accumulates rule deltas against an explicit rule table.
func ScoreWith(record models.StockRecord, rules []Rule) int {
	total := 0
	for _, r := range rules {
		if r.Applies(record) {
			total += r.Delta
		}
	}
	return total
}

// Label maps a total score to the discrete recommendation.
func Label(score int) models.Signal {
	switch {
	case score >= 4:
		return models.SignalStrongBuy
	case score >= 2:
		return models.SignalBuy
	case score >= 0:
		return models.SignalNeutral
	case score >= -2:
		return models.SignalHold
	default:
		return models.SignalSell
	}
}

// SignalFor derives the recommendation label for one record.
func SignalFor(record models.StockRecord) models.Signal {
	return Label(Score(record))
}
