package yahoo

import (
	"math"
	"testing"

	finance "github.com/piquette/finance-go"

	"StockAI/internal/domain/models"
)

func TestMapEquityFundamentals(t *testing.T) {
	q := &finance.Equity{
		Quote: finance.Quote{
			ShortName:                  "Acme Corp",
			RegularMarketPrice:         120,
			RegularMarketChange:        2.5,
			RegularMarketChangePercent: 2.1,
			RegularMarketVolume:        1_500_000,
			AverageDailyVolume3Month:   2_000_000,
			FiftyTwoWeekHigh:           150,
			FiftyTwoWeekLow:            80,
			FullExchangeName:           "NasdaqGS",
		},
		EpsTrailingTwelveMonths:     6,
		ForwardPE:                   18.5,
		PriceToBook:                 3.2,
		TrailingAnnualDividendYield: 0.015,
		MarketCap:                   50_000_000_000,
	}

	record := mapEquity("ACME", q)

	if got := record.Symbol(); got != "ACME" {
		t.Fatalf("symbol = %q, want ACME", got)
	}
	checks := map[string]float64{
		models.KeyPrice:         120,
		models.KeyMarketCap:     50_000_000_000,
		models.KeyEPS:           6,
		models.KeyPERatio:       20,
		models.KeyForwardPE:     18.5,
		models.KeyPriceToBook:   3.2,
		models.KeyDividendYield: 1.5,
		models.KeyHigh52W:       150,
		models.KeyLow52W:        80,
		models.KeyVolume:        1_500_000,
		models.KeyAvgVolume:     2_000_000,
	}
	for key, want := range checks {
		got, ok := record.Number(key)
		if !ok {
			t.Fatalf("missing %s", key)
		}
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("%s = %v, want %v", key, got, want)
		}
	}
	if name, _ := record.Text(models.KeyName); name != "Acme Corp" {
		t.Fatalf("name = %q", name)
	}
	if exch, _ := record.Text(models.KeyExchange); exch != "NasdaqGS" {
		t.Fatalf("exchange = %q", exch)
	}
}

func TestMapEquityOmitsZeroFundamentals(t *testing.T) {
	q := &finance.Equity{
		Quote: finance.Quote{RegularMarketPrice: 50},
	}
	record := mapEquity("ZCO", q)
	for _, key := range []string{
		models.KeyMarketCap, models.KeyEPS, models.KeyPERatio,
		models.KeyForwardPE, models.KeyPriceToBook, models.KeyDividendYield,
	} {
		if _, ok := record[key]; ok {
			t.Fatalf("unexpected %s in record", key)
		}
	}
}
