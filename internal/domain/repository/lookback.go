package repository

import "time"

// Lookback represents the historical window requested from a provider.
type Lookback string

const (
	Lookback1M Lookback = "1m"
	Lookback3M Lookback = "3m"
	Lookback6M Lookback = "6m"
	Lookback1Y Lookback = "1y"
)

// IsValidLookback returns true if lb is a supported window.
func IsValidLookback(lb Lookback) bool {
	switch lb {
	case Lookback1M, Lookback3M, Lookback6M, Lookback1Y:
		return true
	default:
		return false
	}
}

// DefaultLookback returns the default window (one trading year).
func DefaultLookback() Lookback { return Lookback1Y }

// NormalizeLookback converts a raw string to a valid lookback (or default).
func NormalizeLookback(s string) Lookback {
	if s == "" {
		return DefaultLookback()
	}
	lb := Lookback(s)
	if IsValidLookback(lb) {
		return lb
	}
	return DefaultLookback()
}

// Duration maps the lookback to wall-clock time for provider range queries.
func (lb Lookback) Duration() time.Duration {
	switch lb {
	case Lookback1M:
		return 31 * 24 * time.Hour
	case Lookback3M:
		return 92 * 24 * time.Hour
	case Lookback6M:
		return 183 * 24 * time.Hour
	default:
		return 365 * 24 * time.Hour
	}
}
