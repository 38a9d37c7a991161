package usecase

import (
	"context"
	"testing"
	"time"

	"StockAI/internal/domain/models"
)

func ptr(v float64) *float64 { return &v }

func newStocksUC(t *testing.T, market *fakeMarket, universe []string) *StocksUseCase {
	t.Helper()
	return NewStocksUseCase(market, testCache(t), nopMetrics{}, testLogger(t), universe, 2, time.Minute)
}

func TestGetQuoteNormalizesSymbol(t *testing.T) {
	market := &fakeMarket{quotes: map[string]models.StockRecord{"AAPL": record("AAPL", 28)}}
	uc := newStocksUC(t, market, nil)

	got, err := uc.GetQuote(context.Background(), "  aapl ")
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if got.Symbol() != "AAPL" {
		t.Fatalf("expected AAPL, got %q", got.Symbol())
	}

	if _, err := uc.GetQuote(context.Background(), "   "); err == nil {
		t.Fatalf("expected error for blank symbol")
	}
}

func TestGetQuoteUsesCache(t *testing.T) {
	market := &fakeMarket{quotes: map[string]models.StockRecord{"AAPL": record("AAPL", 28)}}
	uc := newStocksUC(t, market, nil)

	if _, err := uc.GetQuote(context.Background(), "AAPL"); err != nil {
		t.Fatalf("first quote: %v", err)
	}
	// provider goes away; cache must answer
	market.mu.Lock()
	delete(market.quotes, "AAPL")
	market.mu.Unlock()

	got, err := uc.GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("cached quote: %v", err)
	}
	if got.Symbol() != "AAPL" {
		t.Fatalf("expected cached AAPL, got %q", got.Symbol())
	}
}

func TestGetIndicatorsComputesFromHistory(t *testing.T) {
	series := make([]models.PricePoint, 0, 60)
	day := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	px := 100.0
	for i := 0; i < 60; i++ {
		px += 0.5
		series = append(series, models.PricePoint{
			Time: day, Open: px - 0.2, High: px + 1, Low: px - 1, Close: px, Volume: 1e6,
		})
		day = day.AddDate(0, 0, 1)
	}
	market := &fakeMarket{
		quotes:  map[string]models.StockRecord{"AAPL": record("AAPL", 28)},
		history: map[string][]models.PricePoint{"AAPL": series},
	}
	uc := newStocksUC(t, market, nil)

	got, err := uc.GetIndicators(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("indicators: %v", err)
	}
	if got.Symbol() != "AAPL" {
		t.Fatalf("expected symbol, got %q", got.Symbol())
	}
	if _, ok := got.Number(models.KeySMA20); !ok {
		t.Fatalf("expected sma_20 present: %v", got)
	}
	if _, ok := got.Number(models.KeySMA200); ok {
		t.Fatalf("sma_200 should be missing on 60 bars")
	}
	if rsi, ok := got.Number(models.KeyRSI14); !ok || rsi != 100 {
		t.Fatalf("all-gain series should yield RSI 100, got %v ok=%v", rsi, ok)
	}
}

func TestGetTrendingDropsFailures(t *testing.T) {
	market := &fakeMarket{
		quotes: map[string]models.StockRecord{
			"AAA": record("AAA", 10),
			"CCC": record("CCC", 12),
		},
	}
	uc := newStocksUC(t, market, []string{"AAA", "BBB", "CCC"})

	got, err := uc.GetTrending(context.Background())
	if err != nil {
		t.Fatalf("trending: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 trending records, got %d", len(got))
	}
}

func TestListFiltersAndPaginates(t *testing.T) {
	market := &fakeMarket{
		quotes: map[string]models.StockRecord{
			"BIG": {models.KeySymbol: "BIG", models.KeyMarketCap: 3e12, models.KeyPERatio: 30.0, models.KeySector: "Technology"},
			"MID": {models.KeySymbol: "MID", models.KeyMarketCap: 5e11, models.KeyPERatio: 18.0, models.KeySector: "Technology"},
			"SML": {models.KeySymbol: "SML", models.KeyMarketCap: 2e9, models.KeyPERatio: 12.0, models.KeySector: "Energy"},
		},
	}
	uc := newStocksUC(t, market, []string{"BIG", "MID", "SML"})

	out, err := uc.List(context.Background(), models.ListStocksRequest{
		Page: 1, PageSize: 10, Sector: "technology",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if out.Pagination.Total != 2 {
		t.Fatalf("expected 2 tech stocks, got %d", out.Pagination.Total)
	}
	// descending market cap
	if out.Data[0].Symbol() != "BIG" || out.Data[1].Symbol() != "MID" {
		t.Fatalf("expected BIG then MID, got %s %s", out.Data[0].Symbol(), out.Data[1].Symbol())
	}

	out, err = uc.List(context.Background(), models.ListStocksRequest{
		Page: 2, PageSize: 2,
	})
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if out.Pagination.TotalPages != 2 || len(out.Data) != 1 {
		t.Fatalf("expected final page with 1 entry, got %+v", out.Pagination)
	}

	out, err = uc.List(context.Background(), models.ListStocksRequest{
		Page: 1, PageSize: 10, PEMax: ptr(20), MarketCapMin: ptr(1e10),
	})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if out.Pagination.Total != 1 || out.Data[0].Symbol() != "MID" {
		t.Fatalf("expected only MID, got %+v", out.Data)
	}
}

func TestGetHistoryNormalizesPeriod(t *testing.T) {
	market := &fakeMarket{
		quotes:  map[string]models.StockRecord{"AAPL": record("AAPL", 28)},
		history: map[string][]models.PricePoint{"AAPL": {{Close: 1}}},
	}
	uc := newStocksUC(t, market, nil)

	out, err := uc.GetHistory(context.Background(), "AAPL", "bogus")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if out.Period != "1y" {
		t.Fatalf("expected default period 1y, got %q", out.Period)
	}
	if out.Count != 1 {
		t.Fatalf("expected 1 point, got %d", out.Count)
	}
}

func TestHistoryResultTrimAndTail(t *testing.T) {
	day := func(n int) time.Time { return time.Date(2026, 1, n, 0, 0, 0, 0, time.UTC) }
	res := &HistoryResult{
		Points: []models.PricePoint{
			{Time: day(1), Close: 1},
			{Time: day(2), Close: 2},
			{Time: day(3), Close: 3},
			{Time: day(4), Close: 4},
		},
		Count: 4,
	}

	res.TrimBefore(day(2))
	if res.Count != 3 || !res.Points[0].Time.Equal(day(2)) {
		t.Fatalf("expected 3 points from day 2, got %d starting %v", res.Count, res.Points[0].Time)
	}

	res.Tail(2)
	if res.Count != 2 || res.Points[0].Close != 3 {
		t.Fatalf("expected last 2 points, got %+v", res.Points)
	}

	res.Tail(0)
	if res.Count != 2 {
		t.Fatalf("tail 0 must keep everything, got %d", res.Count)
	}
}

func TestGetFinancialsGroupsFundamentals(t *testing.T) {
	market := &fakeMarket{quotes: map[string]models.StockRecord{"AAPL": {
		models.KeySymbol:        "AAPL",
		models.KeyPrice:         100.0,
		models.KeyPERatio:       28.0,
		models.KeyMarketCap:     3e12,
		models.KeyProfitMargin:  25.0,
		models.KeyDividendYield: 0.5,
		models.KeyRSI14:         60.0,
	}}}
	uc := newStocksUC(t, market, nil)

	res, err := uc.GetFinancials(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("financials: %v", err)
	}
	if res.StockSymbol != "AAPL" {
		t.Fatalf("symbol = %q", res.StockSymbol)
	}

	valuation, ok := res.Financials["valuation"]
	if !ok {
		t.Fatalf("missing valuation group: %v", res.Financials)
	}
	if pe, ok := valuation.Number(models.KeyPERatio); !ok || pe != 28 {
		t.Fatalf("pe_ratio = %v ok=%v", pe, ok)
	}
	if _, ok := res.Financials["profitability"]; !ok {
		t.Fatalf("missing profitability group")
	}
	if _, ok := res.Financials["dividend"]; !ok {
		t.Fatalf("missing dividend group")
	}
	// no growth metrics in the quote, so no growth group
	if _, ok := res.Financials["growth"]; ok {
		t.Fatalf("unexpected growth group")
	}
	// technicals stay out of the financials payload
	for _, section := range res.Financials {
		if _, ok := section.Number(models.KeyRSI14); ok {
			t.Fatalf("rsi leaked into financials: %v", section)
		}
	}
}
