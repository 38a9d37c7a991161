package models

import (
	"encoding/json"
	"fmt"
)

// Condition constrains a single metric. Bound presence is carried by the
// pointer: nil means "no bound", so zero stays a valid filter value.
type Condition struct {
	Min    *float64    `json:"min,omitempty"`
	Max    *float64    `json:"max,omitempty"`
	Equals interface{} `json:"equals,omitempty"`
}

// UnmarshalJSON accepts the object form {min, max, equals} as well as a bare
// scalar literal, which is shorthand for an equality condition.
func (c *Condition) UnmarshalJSON(b []byte) error {
	var obj struct {
		Min    *float64    `json:"min"`
		Max    *float64    `json:"max"`
		Equals interface{} `json:"equals"`
	}
	if err := json.Unmarshal(b, &obj); err == nil {
		if obj.Min != nil || obj.Max != nil || obj.Equals != nil {
			c.Min, c.Max, c.Equals = obj.Min, obj.Max, obj.Equals
			return nil
		}
		// an empty object is a valid no-op condition
		if len(b) > 0 && b[0] == '{' {
			*c = Condition{}
			return nil
		}
	}
	var scalar interface{}
	if err := json.Unmarshal(b, &scalar); err != nil {
		return fmt.Errorf("condition: %w", err)
	}
	switch scalar.(type) {
	case string, float64, bool:
		c.Equals = scalar
		return nil
	}
	return fmt.Errorf("condition: unsupported literal %s", b)
}

// Empty reports whether the condition constrains nothing.
func (c Condition) Empty() bool {
	return c.Min == nil && c.Max == nil && c.Equals == nil
}

// FilterSpec maps metric keys to conditions. Keys absent from a record are
// skipped during matching, never treated as failures.
type FilterSpec map[string]Condition

// Bound is a convenience constructor used by presets and tests.
func Bound(min, max *float64) Condition { return Condition{Min: min, Max: max} }

// MinOf returns a Condition with only a lower bound.
func MinOf(v float64) Condition { return Condition{Min: &v} }

// MaxOf returns a Condition with only an upper bound.
func MaxOf(v float64) Condition { return Condition{Max: &v} }

// Between returns a Condition with both bounds.
func Between(min, max float64) Condition { return Condition{Min: &min, Max: &max} }

// EqualsOf returns an equality Condition.
func EqualsOf(v interface{}) Condition { return Condition{Equals: v} }

// Preset is a named, reusable filter bundle.
type Preset struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Filters     FilterSpec `json:"filters"`
}

// Signal is the discrete buy/sell recommendation label.
type Signal string

const (
	SignalStrongBuy Signal = "Strong Buy"
	SignalBuy       Signal = "Buy"
	SignalNeutral   Signal = "Neutral"
	SignalHold      Signal = "Hold"
	SignalSell      Signal = "Sell"
)

// Priority orders signals for ranking: Strong Buy=4 down to Sell=0.
func (s Signal) Priority() int {
	switch s {
	case SignalStrongBuy:
		return 4
	case SignalBuy:
		return 3
	case SignalNeutral:
		return 2
	case SignalHold:
		return 1
	default:
		return 0
	}
}

// ScreenReport summarizes one screen invocation so callers can observe
// partial failures instead of a silently shrunk result list.
type ScreenReport struct {
	Scanned int      `json:"scanned"`
	Matched int      `json:"matched"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"` // one "SYMBOL: reason" per failed fetch
}

// ScreenResponse is the orchestrator's result: ranked records plus the report.
type ScreenResponse struct {
	Count   int           `json:"count"`
	Results []StockRecord `json:"results"`
	Report  ScreenReport  `json:"report"`
}

// InterpretedScreen is the natural-language screening result.
type InterpretedScreen struct {
	OriginalQuery      string        `json:"original_query"`
	InterpretedFilters FilterSpec    `json:"interpreted_filters"`
	Interpretation     string        `json:"interpretation"`
	Results            []StockRecord `json:"results"`
	Count              int           `json:"count"`
	Report             ScreenReport  `json:"report"`
}
