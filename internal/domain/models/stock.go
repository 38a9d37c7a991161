package models

import (
	"encoding/json"
	"time"
)

// Metric keys shared across provider records, filters and indicator output.
// The vocabulary is fixed; records carry only the keys a provider could fill.
const (
	KeySymbol        = "symbol"
	KeyName          = "name"
	KeyPrice         = "price"
	KeyChange        = "change"
	KeyChangePercent = "change_percent"

	// valuation
	KeyMarketCap    = "market_cap"
	KeyPERatio      = "pe_ratio"
	KeyForwardPE    = "forward_pe"
	KeyPEGRatio     = "peg_ratio"
	KeyPriceToBook  = "price_to_book"
	KeyPriceToSales = "price_to_sales"
	KeyEVToEBITDA   = "ev_to_ebitda"
	KeyEVToRevenue  = "ev_to_revenue"
	KeyEPS          = "eps"

	// growth
	KeyRevenueGrowth  = "revenue_growth"
	KeyEarningsGrowth = "earnings_growth"
	KeyEPSGrowth      = "eps_growth_this_year"

	// profitability
	KeyGrossMargin     = "gross_margin"
	KeyOperatingMargin = "operating_margin"
	KeyProfitMargin    = "profit_margin"
	KeyReturnOnAssets  = "return_on_assets"
	KeyReturnOnEquity  = "return_on_equity"
	KeyROIC            = "return_on_invested_capital"

	// dividend
	KeyDividendYield  = "dividend_yield"
	KeyDividendGrowth = "dividend_growth"
	KeyPayoutRatio    = "payout_ratio"

	// liquidity
	KeyCurrentRatio = "current_ratio"
	KeyQuickRatio   = "quick_ratio"
	KeyDebtToEquity = "debt_to_equity"

	// technical
	KeyRSI14           = "rsi_14"
	KeySMA20           = "sma_20"
	KeySMA50           = "sma_50"
	KeySMA200          = "sma_200"
	KeyATR14           = "atr_14"
	KeyPriceChange1M   = "price_change_1m"
	KeyPriceChange3M   = "price_change_3m"
	KeyPriceChange6M   = "price_change_6m"
	KeyOvernightGap    = "overnight_gap"
	KeyDistance52WHigh = "distance_52w_high"
	KeyDistance52WLow  = "distance_52w_low"
	KeyAvgVolume       = "avg_volume"
	KeyHigh52W         = "high_52w"
	KeyLow52W          = "low_52w"
	KeyVolume          = "volume"
	KeyBeta            = "beta"

	// classification
	KeySector   = "sector"
	KeyIndustry = "industry"
	KeyExchange = "exchange"
	KeyCountry  = "country"

	// derived
	KeyAISignal    = "ai_signal"
	KeySignalScore = "signal_score"
)

// StockRecord is a flat metric-name to value mapping for one symbol at a point
// in time. A key that a provider could not fill is absent, never zeroed.
type StockRecord map[string]interface{}

// Number returns the numeric value for key. Absent keys, nil values and
// non-numeric values report false.
func (r StockRecord) Number(key string) (float64, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// Text returns the string value for key, false when absent or non-string.
func (r StockRecord) Text(key string) (string, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Symbol returns the record's symbol, or "" when unset.
func (r StockRecord) Symbol() string {
	s, _ := r.Text(KeySymbol)
	return s
}

// Merge copies every key from other into r, overwriting existing keys.
func (r StockRecord) Merge(other StockRecord) {
	for k, v := range other {
		r[k] = v
	}
}

// Clone returns a shallow copy of the record.
func (r StockRecord) Clone() StockRecord {
	out := make(StockRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// PricePoint is one daily OHLCV sample. Series are chronological, oldest first.
type PricePoint struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// ProfileRecord describes the company behind a symbol.
type ProfileRecord struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Sector      string `json:"sector,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Exchange    string `json:"exchange,omitempty"`
	Country     string `json:"country,omitempty"`
	Website     string `json:"website,omitempty"`
	Employees   int    `json:"employees,omitempty"`
}
