package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"StockAI/internal/domain/models"
	domrepo "StockAI/internal/domain/repository"
	icache "StockAI/internal/service/cache"
	"StockAI/internal/services/ai"
	"StockAI/internal/usecase"
	pkgcache "StockAI/pkg/cache"
	applogger "StockAI/pkg/logger"
)

type stubMarket struct {
	quotes map[string]models.StockRecord
}

func (s *stubMarket) GetQuote(_ context.Context, symbol string) (models.StockRecord, error) {
	q, ok := s.quotes[symbol]
	if !ok {
		return nil, domrepo.ErrNotFound
	}
	return q.Clone(), nil
}

func (s *stubMarket) GetProfile(_ context.Context, symbol string) (*models.ProfileRecord, error) {
	if _, ok := s.quotes[symbol]; !ok {
		return nil, domrepo.ErrNotFound
	}
	return &models.ProfileRecord{Symbol: symbol}, nil
}

func (s *stubMarket) GetHistory(context.Context, string, domrepo.Lookback) ([]models.PricePoint, error) {
	return nil, nil
}

type stubMetrics struct{}

func (stubMetrics) RecordFetch(string, string)    {}
func (stubMetrics) RecordScreen(int, int)         {}
func (stubMetrics) RecordError(string)            {}
func (stubMetrics) RecordLatency(string, float64) {}

type offlineGenerator struct{}

func (offlineGenerator) Generate(context.Context, string) (string, error) {
	return "", errors.New("offline")
}
func (offlineGenerator) Available() bool { return false }

func newTestLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func newScreenerHandler(t *testing.T, market domrepo.MarketData, universe []string) *ScreenerHandler {
	t.Helper()
	mc := pkgcache.NewMemoryCache()
	t.Cleanup(func() { _ = mc.Close() })

	logger := newTestLogger(t)
	analyst := ai.NewAnalyst(offlineGenerator{}, nil)
	uc := usecase.NewScreenUseCase(market, mc, analyst, stubMetrics{}, logger, usecase.ScreenConfig{
		Universe: universe,
		Workers:  2,
		Timeout:  5 * time.Second,
	})
	return NewScreenerHandler(logger, uc)
}

func doJSON(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestScreenerQueryEndpoint(t *testing.T) {
	market := &stubMarket{quotes: map[string]models.StockRecord{
		"AAA": {models.KeySymbol: "AAA", models.KeyPERatio: 12.0},
		"BBB": {models.KeySymbol: "BBB", models.KeyPERatio: 40.0},
	}}
	h := newScreenerHandler(t, market, []string{"AAA", "BBB"})
	e := echo.New()
	h.RegisterRoutes(e)

	rec := doJSON(t, e, http.MethodPost, "/api/v1/screener/query",
		`{"filters": {"pe_ratio": {"max": 20}}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data models.ScreenResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Count != 1 || envelope.Data.Results[0].Symbol() != "AAA" {
		t.Fatalf("unexpected screen payload: %+v", envelope.Data)
	}
}

func TestScreenerQueryValidation(t *testing.T) {
	h := newScreenerHandler(t, &stubMarket{quotes: map[string]models.StockRecord{}}, []string{"AAA"})
	e := echo.New()
	h.RegisterRoutes(e)

	rec := doJSON(t, e, http.MethodPost, "/api/v1/screener/query", `{"limit": 10}`)
	var envelope struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 envelope for missing filters, got %d", envelope.Status)
	}
}

func TestScreenerQueryUsesResponseCache(t *testing.T) {
	market := &stubMarket{quotes: map[string]models.StockRecord{
		"AAA": {models.KeySymbol: "AAA", models.KeyPERatio: 12.0},
	}}
	h := newScreenerHandler(t, market, []string{"AAA"})
	h.SetCache(icache.NewTTLCache())
	e := echo.New()
	h.RegisterRoutes(e)

	body := `{"filters": {"pe_ratio": {"max": 20}}}`
	first := doJSON(t, e, http.MethodPost, "/api/v1/screener/query", body)
	if first.Code != http.StatusOK {
		t.Fatalf("first request: %d", first.Code)
	}

	// provider disappears; the cached response must still answer
	delete(market.quotes, "AAA")
	second := doJSON(t, e, http.MethodPost, "/api/v1/screener/query", body)
	if second.Code != http.StatusOK {
		t.Fatalf("second request: %d", second.Code)
	}
	var envelope struct {
		Data models.ScreenResponse `json:"data"`
	}
	if err := json.Unmarshal(second.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Count != 1 {
		t.Fatalf("expected cached result, got %+v", envelope.Data)
	}
}

func TestScreenerPresetsEndpoint(t *testing.T) {
	h := newScreenerHandler(t, &stubMarket{quotes: map[string]models.StockRecord{}}, []string{"AAA"})
	e := echo.New()
	h.RegisterRoutes(e)

	rec := doJSON(t, e, http.MethodGet, "/api/v1/screener/presets", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope struct {
		Data map[string]models.Preset `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := envelope.Data["undervalued"]; !ok {
		t.Fatalf("expected undervalued preset, got %v", envelope.Data)
	}
}

func TestScreenerUnknownPreset(t *testing.T) {
	h := newScreenerHandler(t, &stubMarket{quotes: map[string]models.StockRecord{}}, []string{"AAA"})
	e := echo.New()
	h.RegisterRoutes(e)

	rec := doJSON(t, e, http.MethodPost, "/api/v1/screener/presets/nope", "")
	var envelope struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Status != http.StatusNotFound {
		t.Fatalf("expected 404 envelope, got %d", envelope.Status)
	}
}

func TestStocksQuoteNotFound(t *testing.T) {
	logger := newTestLogger(t)
	mc := pkgcache.NewMemoryCache()
	t.Cleanup(func() { _ = mc.Close() })
	stocks := usecase.NewStocksUseCase(&stubMarket{quotes: map[string]models.StockRecord{}},
		mc, stubMetrics{}, logger, []string{"AAA"}, 2, time.Minute)
	h := NewStocksHandler(logger, stocks)
	e := echo.New()
	h.RegisterRoutes(e)

	rec := doJSON(t, e, http.MethodGet, "/api/v1/stocks/quote/GONE", "")
	var envelope struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Status != http.StatusNotFound {
		t.Fatalf("expected 404 envelope, got %d", envelope.Status)
	}
}
