package screener

import "StockAI/internal/domain/models"

// FieldSpec describes one filterable metric for the schema catalog endpoint.
type FieldSpec struct {
	Type  string `json:"type"` // "range" or "select"
	Unit  string `json:"unit,omitempty"`
	Label string `json:"label"`
}

// Schema groups the filterable metric vocabulary by semantic category.
var Schema = map[string]map[string]FieldSpec{
	"valuation": {
		models.KeyMarketCap:    {Type: "range", Unit: "currency", Label: "Market Cap"},
		models.KeyPERatio:      {Type: "range", Label: "P/E Ratio"},
		models.KeyForwardPE:    {Type: "range", Label: "Forward P/E"},
		models.KeyPEGRatio:     {Type: "range", Label: "PEG Ratio"},
		models.KeyPriceToBook:  {Type: "range", Label: "Price/Book"},
		models.KeyPriceToSales: {Type: "range", Label: "Price/Sales"},
		models.KeyEVToEBITDA:   {Type: "range", Label: "EV/EBITDA"},
		models.KeyEVToRevenue:  {Type: "range", Label: "EV/Revenue"},
	},
	"growth": {
		models.KeyRevenueGrowth:  {Type: "range", Unit: "percent", Label: "Revenue Growth"},
		models.KeyEarningsGrowth: {Type: "range", Unit: "percent", Label: "Earnings Growth"},
		models.KeyEPSGrowth:      {Type: "range", Unit: "percent", Label: "EPS Growth (This Year)"},
	},
	"profitability": {
		models.KeyGrossMargin:     {Type: "range", Unit: "percent", Label: "Gross Margin"},
		models.KeyOperatingMargin: {Type: "range", Unit: "percent", Label: "Operating Margin"},
		models.KeyProfitMargin:    {Type: "range", Unit: "percent", Label: "Net Profit Margin"},
		models.KeyReturnOnAssets:  {Type: "range", Unit: "percent", Label: "Return on Assets"},
		models.KeyReturnOnEquity:  {Type: "range", Unit: "percent", Label: "Return on Equity"},
		models.KeyROIC:            {Type: "range", Unit: "percent", Label: "Return on Invested Capital"},
	},
	"dividend": {
		models.KeyDividendYield:  {Type: "range", Unit: "percent", Label: "Dividend Yield"},
		models.KeyDividendGrowth: {Type: "range", Unit: "percent", Label: "Dividend Growth"},
		models.KeyPayoutRatio:    {Type: "range", Unit: "percent", Label: "Payout Ratio"},
	},
	"liquidity": {
		models.KeyCurrentRatio: {Type: "range", Label: "Current Ratio"},
		models.KeyQuickRatio:   {Type: "range", Label: "Quick Ratio"},
		models.KeyDebtToEquity: {Type: "range", Label: "Debt/Equity"},
	},
	"technical": {
		models.KeyRSI14:           {Type: "range", Label: "RSI (14)"},
		models.KeySMA20:           {Type: "range", Label: "SMA (20)"},
		models.KeySMA50:           {Type: "range", Label: "SMA (50)"},
		models.KeySMA200:          {Type: "range", Label: "SMA (200)"},
		models.KeyATR14:           {Type: "range", Label: "ATR (14)"},
		models.KeyPriceChange1M:   {Type: "range", Unit: "percent", Label: "1M Price Change"},
		models.KeyPriceChange3M:   {Type: "range", Unit: "percent", Label: "3M Price Change"},
		models.KeyPriceChange6M:   {Type: "range", Unit: "percent", Label: "6M Price Change"},
		models.KeyOvernightGap:    {Type: "range", Unit: "percent", Label: "Overnight Gap"},
		models.KeyBeta:            {Type: "range", Label: "Beta"},
		models.KeyDistance52WHigh: {Type: "range", Unit: "percent", Label: "Distance from 52W High"},
		models.KeyDistance52WLow:  {Type: "range", Unit: "percent", Label: "Distance from 52W Low"},
		models.KeyAvgVolume:       {Type: "range", Label: "Average Volume"},
	},
	"classification": {
		models.KeySector:   {Type: "select", Label: "Sector"},
		models.KeyIndustry: {Type: "select", Label: "Industry"},
		models.KeyExchange: {Type: "select", Label: "Exchange"},
		models.KeyCountry:  {Type: "select", Label: "Country"},
	},
}

// HasTechnicalFilter reports whether the filter set references any technical key.
// The orchestrator uses this to skip history fetches when no technical
// condition is present; fetching candles is the dominant per-symbol cost.
func HasTechnicalFilter(spec models.FilterSpec) bool {
	tech := Schema["technical"]
	for key := range spec {
		if _, ok := tech[key]; ok {
			return true
		}
	}
	return false
}
