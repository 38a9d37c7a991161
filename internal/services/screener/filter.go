package screener

import "StockAI/internal/domain/models"

// Matches evaluates one candidate record against a declarative filter spec.
// A key absent from the record (or carrying a missing value) passes that
// key's condition vacuously: missing data can never disqualify a candidate.
// All present conditions must hold for a match. Pure function, no state.
func Matches(record models.StockRecord, spec models.FilterSpec) bool {
	for key, cond := range spec {
		if cond.Empty() {
			continue
		}
		raw, ok := record[key]
		if !ok || raw == nil {
			continue
		}

		if cond.Equals != nil && !equalValue(record, key, cond.Equals) {
			return false
		}

		v, numeric := record.Number(key)
		if !numeric {
			continue
		}
		if cond.Min != nil && v < *cond.Min {
			return false
		}
		if cond.Max != nil && v > *cond.Max {
			return false
		}
	}
	return true
}

func equalValue(record models.StockRecord, key string, target interface{}) bool {
	switch want := target.(type) {
	case string:
		got, ok := record.Text(key)
		return ok && got == want
	case bool:
		got, ok := record[key].(bool)
		return ok && got == want
	default:
		wantNum, ok := toNumber(target)
		if !ok {
			return false
		}
		got, ok := record.Number(key)
		return ok && got == wantNum
	}
}

func toNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
