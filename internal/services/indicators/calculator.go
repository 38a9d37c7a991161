package indicators

import (
	"math"

	"StockAI/internal/domain/models"
)

// Default periods for the derived indicator set.
const (
	RSIPeriod = 14
	ATRPeriod = 14

	// approximate trading-day lookbacks
	Days1M = 22
	Days3M = 66
	Days6M = 132

	avgVolumeWindow = 30
)

// Compute derives the full indicator set from a chronological daily series.
// Each indicator degrades independently: a key is present in the result only
// when enough data exists and no denominator was zero. The call itself never
// fails.
func Compute(series []models.PricePoint) models.StockRecord {
	out := models.StockRecord{}
	if len(series) == 0 {
		return out
	}

	closes := make([]float64, len(series))
	for i, p := range series {
		closes[i] = p.Close
	}

	put := func(key string, compute func() (float64, bool)) {
		if v, ok := compute(); ok {
			out[key] = v
		}
	}

	put(models.KeyRSI14, func() (float64, bool) { return RSI(closes, RSIPeriod) })
	put(models.KeySMA20, func() (float64, bool) { return SMA(closes, 20) })
	put(models.KeySMA50, func() (float64, bool) { return SMA(closes, 50) })
	put(models.KeySMA200, func() (float64, bool) { return SMA(closes, 200) })
	put(models.KeyATR14, func() (float64, bool) { return ATR(series, ATRPeriod) })
	put(models.KeyPriceChange1M, func() (float64, bool) { return PriceChange(closes, Days1M) })
	put(models.KeyPriceChange3M, func() (float64, bool) { return PriceChange(closes, Days3M) })
	put(models.KeyPriceChange6M, func() (float64, bool) { return PriceChange(closes, Days6M) })
	put(models.KeyOvernightGap, func() (float64, bool) { return OvernightGap(series) })
	put(models.KeyDistance52WHigh, func() (float64, bool) { return DistanceFromHigh(closes) })
	put(models.KeyDistance52WLow, func() (float64, bool) { return DistanceFromLow(closes) })
	put(models.KeyAvgVolume, func() (float64, bool) { return AverageVolume(series) })

	return out
}

// RSI computes the Wilder-style Relative Strength Index over the trailing
// window of day-over-day close deltas. It reports false when fewer than
// period+1 closes exist, or when both average gain and average loss are zero.
// A zero average loss with positive gains yields exactly 100, never infinity.
func RSI(closes []float64, period int) (float64, bool) {
	if period < 1 || len(closes) < period+1 {
		return 0, false
	}
	var gain, loss float64
	for i := len(closes) - period; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	avgGain := gain / float64(period)
	avgLoss := loss / float64(period)
	if avgLoss == 0 {
		if avgGain == 0 {
			return 0, false
		}
		return 100, true
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), true
}

// SMA computes the arithmetic mean of the trailing window closes.
func SMA(closes []float64, window int) (float64, bool) {
	if window < 1 || len(closes) < window {
		return 0, false
	}
	sum := 0.0
	for i := len(closes) - window; i < len(closes); i++ {
		sum += closes[i]
	}
	return sum / float64(window), true
}

// ATR computes the rolling mean of the daily true range, where true range is
// max(high-low, |high-prevClose|, |low-prevClose|). Requires period+1 samples
// so every bar in the window has a previous close.
func ATR(series []models.PricePoint, period int) (float64, bool) {
	if period < 1 || len(series) < period+1 {
		return 0, false
	}
	sum := 0.0
	for i := len(series) - period; i < len(series); i++ {
		p := series[i]
		prevClose := series[i-1].Close
		tr := p.High - p.Low
		if v := math.Abs(p.High - prevClose); v > tr {
			tr = v
		}
		if v := math.Abs(p.Low - prevClose); v > tr {
			tr = v
		}
		sum += tr
	}
	return sum / float64(period), true
}

// PriceChange computes the percent change of the latest close versus the close
// `days` trading days earlier. When the series is shorter than the lookback it
// degrades to the earliest available close instead of failing.
func PriceChange(closes []float64, days int) (float64, bool) {
	if len(closes) == 0 {
		return 0, false
	}
	idx := len(closes) - 1 - days
	if idx < 0 {
		idx = 0
	}
	base := closes[idx]
	if base == 0 {
		return 0, false
	}
	return (closes[len(closes)-1] - base) / base * 100, true
}

// OvernightGap computes (todayOpen - yesterdayClose)/yesterdayClose * 100.
// With fewer than two bars the gap is defined as zero.
func OvernightGap(series []models.PricePoint) (float64, bool) {
	if len(series) < 2 {
		return 0, true
	}
	prevClose := series[len(series)-2].Close
	if prevClose == 0 {
		return 0, false
	}
	return (series[len(series)-1].Open - prevClose) / prevClose * 100, true
}

// DistanceFromHigh computes the percent distance of the latest close from the
// rolling maximum close over the full available window.
func DistanceFromHigh(closes []float64) (float64, bool) {
	return distanceFromExtreme(closes, func(a, b float64) bool { return a > b })
}

// DistanceFromLow computes the percent distance of the latest close from the
// rolling minimum close over the full available window.
func DistanceFromLow(closes []float64) (float64, bool) {
	return distanceFromExtreme(closes, func(a, b float64) bool { return a < b })
}

func distanceFromExtreme(closes []float64, better func(a, b float64) bool) (float64, bool) {
	if len(closes) == 0 {
		return 0, false
	}
	extreme := closes[0]
	for _, c := range closes[1:] {
		if better(c, extreme) {
			extreme = c
		}
	}
	if extreme == 0 {
		return 0, false
	}
	return (closes[len(closes)-1] - extreme) / extreme * 100, true
}

// AverageVolume computes the mean of the trailing 30 samples' volume, falling
// back to the full-series mean when fewer samples exist.
func AverageVolume(series []models.PricePoint) (float64, bool) {
	if len(series) == 0 {
		return 0, false
	}
	window := avgVolumeWindow
	if len(series) < window {
		window = len(series)
	}
	sum := 0.0
	for i := len(series) - window; i < len(series); i++ {
		sum += series[i].Volume
	}
	return sum / float64(window), true
}
