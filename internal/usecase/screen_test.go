package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"StockAI/internal/domain/models"
	domrepo "StockAI/internal/domain/repository"
	"StockAI/internal/services/ai"
	pkgcache "StockAI/pkg/cache"
	applogger "StockAI/pkg/logger"
)

type fakeMarket struct {
	mu           sync.Mutex
	quotes       map[string]models.StockRecord
	history      map[string][]models.PricePoint
	failQuotes   map[string]error
	historyCalls int
}

func (f *fakeMarket) GetQuote(_ context.Context, symbol string) (models.StockRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failQuotes[symbol]; ok {
		return nil, err
	}
	q, ok := f.quotes[symbol]
	if !ok {
		return nil, domrepo.ErrNotFound
	}
	return q.Clone(), nil
}

func (f *fakeMarket) GetProfile(_ context.Context, symbol string) (*models.ProfileRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.quotes[symbol]; !ok {
		return nil, domrepo.ErrNotFound
	}
	return &models.ProfileRecord{Symbol: symbol, Name: symbol + " Inc"}, nil
}

func (f *fakeMarket) GetHistory(_ context.Context, symbol string, _ domrepo.Lookback) ([]models.PricePoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.historyCalls++
	return f.history[symbol], nil
}

type nopMetrics struct{}

func (nopMetrics) RecordFetch(string, string)    {}
func (nopMetrics) RecordScreen(int, int)         {}
func (nopMetrics) RecordError(string)            {}
func (nopMetrics) RecordLatency(string, float64) {}

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func testCache(t *testing.T) pkgcache.Service {
	t.Helper()
	mc := pkgcache.NewMemoryCache()
	t.Cleanup(func() { _ = mc.Close() })
	return mc
}

type silentGenerator struct{}

func (silentGenerator) Generate(context.Context, string) (string, error) {
	return "", errors.New("no provider")
}
func (silentGenerator) Available() bool { return false }

func newScreenUC(t *testing.T, market domrepo.MarketData, universe []string) *ScreenUseCase {
	t.Helper()
	analyst := ai.NewAnalyst(silentGenerator{}, nil)
	return NewScreenUseCase(market, testCache(t), analyst, nopMetrics{}, testLogger(t), ScreenConfig{
		Universe: universe,
		Workers:  2,
		Timeout:  5 * time.Second,
	})
}

func record(symbol string, pe float64) models.StockRecord {
	return models.StockRecord{
		models.KeySymbol:  symbol,
		models.KeyPrice:   100.0,
		models.KeyPERatio: pe,
	}
}

func TestScreenFiltersAndReports(t *testing.T) {
	market := &fakeMarket{
		quotes: map[string]models.StockRecord{
			"AAA": record("AAA", 18),
			"BBB": record("BBB", 25),
			"CCC": {models.KeySymbol: "CCC", models.KeyPrice: 50.0}, // P/E missing
		},
	}
	uc := newScreenUC(t, market, []string{"AAA", "BBB", "CCC"})

	resp, err := uc.Screen(context.Background(), models.FilterSpec{
		models.KeyPERatio: models.MaxOf(20),
	}, 0)
	if err != nil {
		t.Fatalf("screen: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("expected 2 results, got %d: %+v", resp.Count, resp.Results)
	}
	got := map[string]bool{}
	for _, r := range resp.Results {
		got[r.Symbol()] = true
	}
	if !got["AAA"] || !got["CCC"] || got["BBB"] {
		t.Fatalf("wrong result set: %v", got)
	}
	if resp.Report.Scanned != 3 || resp.Report.Matched != 2 || resp.Report.Failed != 0 {
		t.Fatalf("unexpected report: %+v", resp.Report)
	}
}

func TestScreenCountsFailuresWithoutAborting(t *testing.T) {
	market := &fakeMarket{
		quotes: map[string]models.StockRecord{
			"AAA": record("AAA", 10),
		},
		failQuotes: map[string]error{"DOWN": errors.New("upstream 500")},
	}
	uc := newScreenUC(t, market, []string{"AAA", "DOWN"})

	resp, err := uc.Screen(context.Background(), models.FilterSpec{}, 0)
	if err != nil {
		t.Fatalf("screen: %v", err)
	}
	if resp.Count != 1 {
		t.Fatalf("expected surviving symbol, got %d", resp.Count)
	}
	if resp.Report.Failed != 1 || len(resp.Report.Errors) != 1 {
		t.Fatalf("expected one reported failure: %+v", resp.Report)
	}
}

func TestScreenRespectsScanCapAndLimit(t *testing.T) {
	quotes := map[string]models.StockRecord{}
	universe := []string{"A1", "A2", "A3", "A4", "A5"}
	for _, s := range universe {
		quotes[s] = record(s, 10)
	}
	market := &fakeMarket{quotes: quotes}

	analyst := ai.NewAnalyst(silentGenerator{}, nil)
	uc := NewScreenUseCase(market, testCache(t), analyst, nopMetrics{}, testLogger(t), ScreenConfig{
		Universe: universe,
		ScanCap:  3,
		Workers:  2,
		Timeout:  5 * time.Second,
	})

	resp, err := uc.Screen(context.Background(), models.FilterSpec{}, 2)
	if err != nil {
		t.Fatalf("screen: %v", err)
	}
	if resp.Report.Scanned != 3 {
		t.Fatalf("expected scan cap of 3, got %d", resp.Report.Scanned)
	}
	if resp.Count != 2 {
		t.Fatalf("expected limit of 2, got %d", resp.Count)
	}
}

func TestScreenAnnotatesSignal(t *testing.T) {
	market := &fakeMarket{
		quotes: map[string]models.StockRecord{
			"AAA": {
				models.KeySymbol:        "AAA",
				models.KeyPERatio:       10.0, // +2
				models.KeyRevenueGrowth: 25.0, // +2
			},
		},
	}
	uc := newScreenUC(t, market, []string{"AAA"})

	resp, err := uc.Screen(context.Background(), models.FilterSpec{}, 0)
	if err != nil {
		t.Fatalf("screen: %v", err)
	}
	r := resp.Results[0]
	if sig, _ := r.Text(models.KeyAISignal); sig != string(models.SignalStrongBuy) {
		t.Fatalf("expected Strong Buy, got %q", sig)
	}
	if score, ok := r.Number(models.KeySignalScore); !ok || score != 4 {
		t.Fatalf("expected score 4, got %v ok=%v", score, ok)
	}
}

func TestScreenFetchesHistoryOnlyForTechnicalFilters(t *testing.T) {
	market := &fakeMarket{
		quotes:  map[string]models.StockRecord{"AAA": record("AAA", 10)},
		history: map[string][]models.PricePoint{"AAA": nil},
	}
	uc := newScreenUC(t, market, []string{"AAA"})

	if _, err := uc.Screen(context.Background(), models.FilterSpec{
		models.KeyPERatio: models.MaxOf(20),
	}, 0); err != nil {
		t.Fatalf("screen: %v", err)
	}
	if market.historyCalls != 0 {
		t.Fatalf("fundamental-only filter should not fetch history, got %d calls", market.historyCalls)
	}

	if _, err := uc.Screen(context.Background(), models.FilterSpec{
		models.KeyRSI14: models.MaxOf(30),
	}, 0); err != nil {
		t.Fatalf("screen: %v", err)
	}
	if market.historyCalls == 0 {
		t.Fatalf("technical filter should fetch history")
	}
}

func TestScreenPresetUnknown(t *testing.T) {
	uc := newScreenUC(t, &fakeMarket{quotes: map[string]models.StockRecord{}}, []string{"AAA"})
	if _, err := uc.ScreenPreset(context.Background(), "no_such_preset", 0); !errors.Is(err, domrepo.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestScreenNaturalLanguageDegrades(t *testing.T) {
	market := &fakeMarket{quotes: map[string]models.StockRecord{"AAA": record("AAA", 10)}}
	uc := newScreenUC(t, market, []string{"AAA"})

	out, err := uc.ScreenNaturalLanguage(context.Background(), "cheap tech stocks", 0)
	if err != nil {
		t.Fatalf("nl screen: %v", err)
	}
	if out.Interpretation != "Could not interpret query" {
		t.Fatalf("expected interpreter fallback, got %q", out.Interpretation)
	}
	// empty filters screen everything
	if out.Count != 1 {
		t.Fatalf("expected vacuous screen result, got %d", out.Count)
	}
}
