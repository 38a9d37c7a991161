package screener

import "StockAI/internal/domain/models"

// Presets is the fixed catalog of named filter bundles exposed by the API.
var Presets = map[string]models.Preset{
	"high_growth": {
		Name:        "High Growth Stocks",
		Description: "Stocks with strong revenue and earnings growth",
		Filters: models.FilterSpec{
			models.KeyRevenueGrowth:  models.MinOf(20),
			models.KeyEarningsGrowth: models.MinOf(15),
			models.KeyMarketCap:      models.MinOf(500_000_000),
		},
	},
	"undervalued": {
		Name:        "Undervalued Value",
		Description: "Stocks with low PE ratios and reasonable dividend yields",
		Filters: models.FilterSpec{
			models.KeyPERatio:       models.MaxOf(15),
			models.KeyPriceToBook:   models.MaxOf(1.5),
			models.KeyDividendYield: models.MinOf(1),
		},
	},
	"momentum": {
		Name:        "Strong Momentum",
		Description: "Stocks with positive price momentum and oversold technicals",
		Filters: models.FilterSpec{
			models.KeyPriceChange3M: models.MinOf(10),
			models.KeyRSI14:         models.Between(50, 80),
			models.KeyBeta:          models.MinOf(1.0),
		},
	},
	"dividend_kings": {
		Name:        "Dividend Aristocrats",
		Description: "High-quality dividend stocks with sustainable payouts",
		Filters: models.FilterSpec{
			models.KeyDividendYield:  models.MinOf(2.5),
			models.KeyPayoutRatio:    models.MaxOf(75),
			models.KeyReturnOnEquity: models.MinOf(10),
		},
	},
	"small_cap_growth": {
		Name:        "Small Cap Growth",
		Description: "High growth small cap stocks with strong fundamentals",
		Filters: models.FilterSpec{
			models.KeyMarketCap:      models.Between(300_000_000, 2_000_000_000),
			models.KeyRevenueGrowth:  models.MinOf(20),
			models.KeyEarningsGrowth: models.MinOf(15),
		},
	},
	"deep_value": {
		Name:        "Deep Value",
		Description: "Extremely undervalued stocks with strong balance sheets",
		Filters: models.FilterSpec{
			models.KeyPERatio:      models.MaxOf(10),
			models.KeyPriceToBook:  models.MaxOf(1.0),
			models.KeyDebtToEquity: models.MaxOf(0.5),
			models.KeyCurrentRatio: models.MinOf(1.5),
		},
	},
	"quality_growth": {
		Name:        "Quality Growth",
		Description: "High-quality growth stocks with strong margins",
		Filters: models.FilterSpec{
			models.KeyReturnOnEquity: models.MinOf(15),
			models.KeyGrossMargin:    models.MinOf(40),
			models.KeyRevenueGrowth:  models.MinOf(10),
			models.KeyDebtToEquity:   models.MaxOf(1.0),
		},
	},
}
