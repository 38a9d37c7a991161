package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"StockAI/internal/domain/models"
	domrepo "StockAI/internal/domain/repository"
	"StockAI/internal/middleware"
	"StockAI/internal/services/indicators"
	"StockAI/internal/services/screener"
	pkgcache "StockAI/pkg/cache"
	applogger "StockAI/pkg/logger"
)

// StocksUseCase serves direct per-symbol lookups and the universe listing.
type StocksUseCase struct {
	market   domrepo.MarketData
	cache    pkgcache.Service
	metrics  domrepo.Metrics
	logger   *applogger.Logger
	universe []string
	workers  int
	cacheTTL time.Duration
}

func NewStocksUseCase(
	market domrepo.MarketData,
	cache pkgcache.Service,
	metrics domrepo.Metrics,
	logger *applogger.Logger,
	universe []string,
	workers int,
	cacheTTL time.Duration,
) *StocksUseCase {
	if len(universe) == 0 {
		universe = DefaultUniverse
	}
	if workers <= 0 {
		workers = 8
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &StocksUseCase{
		market:   market,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		universe: universe,
		workers:  workers,
		cacheTTL: cacheTTL,
	}
}

func normalizeSymbol(symbol string) (string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return "", fmt.Errorf("symbol required")
	}
	return symbol, nil
}

// GetQuote returns the cached or freshly fetched quote record.
func (uc *StocksUseCase) GetQuote(ctx context.Context, symbol string) (models.StockRecord, error) {
	symbol, err := normalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	key := pkgcache.GenerateKey("quote", symbol)
	record, err := pkgcache.Remember(ctx, uc.cache, key, uc.cacheTTL, func(ctx context.Context) (models.StockRecord, error) {
		start := time.Now()
		r, err := uc.market.GetQuote(ctx, symbol)
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		uc.metrics.RecordFetch("quote", outcome)
		uc.metrics.RecordLatency("quote_fetch", time.Since(start).Seconds())
		return r, err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// GetProfile returns the company profile.
func (uc *StocksUseCase) GetProfile(ctx context.Context, symbol string) (*models.ProfileRecord, error) {
	symbol, err := normalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	key := pkgcache.GenerateKey("profile", symbol)
	return pkgcache.Remember(ctx, uc.cache, key, uc.cacheTTL, func(ctx context.Context) (*models.ProfileRecord, error) {
		return uc.market.GetProfile(ctx, symbol)
	})
}

// HistoryResult is the price history payload.
type HistoryResult struct {
	Symbol string              `json:"symbol"`
	Period string              `json:"period"`
	Count  int                 `json:"count"`
	Points []models.PricePoint `json:"points"`
}

// GetHistory returns daily bars for the requested period, oldest first.
func (uc *StocksUseCase) GetHistory(ctx context.Context, symbol, period string) (*HistoryResult, error) {
	symbol, err := normalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	lookback := domrepo.NormalizeLookback(period)

	points, err := uc.market.GetHistory(ctx, symbol, lookback)
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", symbol, err)
	}
	return &HistoryResult{
		Symbol: symbol,
		Period: string(lookback),
		Count:  len(points),
		Points: points,
	}, nil
}

// TrimBefore drops points older than from and fixes up the count.
func (h *HistoryResult) TrimBefore(from time.Time) {
	i := 0
	for i < len(h.Points) && h.Points[i].Time.Before(from) {
		i++
	}
	h.Points = h.Points[i:]
	h.Count = len(h.Points)
}

// Tail keeps only the newest n points.
func (h *HistoryResult) Tail(n int) {
	if n > 0 && n < len(h.Points) {
		h.Points = h.Points[len(h.Points)-n:]
		h.Count = len(h.Points)
	}
}

// GetIndicators computes the technical indicator set from a year of history.
// Indicators with insufficient data are absent from the record, never zeroed.
func (uc *StocksUseCase) GetIndicators(ctx context.Context, symbol string) (models.StockRecord, error) {
	symbol, err := normalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	key := pkgcache.GenerateKey("indicators", symbol)
	return pkgcache.Remember(ctx, uc.cache, key, uc.cacheTTL, func(ctx context.Context) (models.StockRecord, error) {
		series, err := uc.market.GetHistory(ctx, symbol, domrepo.Lookback1Y)
		if err != nil {
			return nil, fmt.Errorf("indicators %s: %w", symbol, err)
		}
		record := indicators.Compute(series)
		record[models.KeySymbol] = symbol
		return record, nil
	})
}

// fundamentalGroups are the schema categories carrying statement-derived
// metrics, as opposed to the price-derived technicals.
var fundamentalGroups = []string{"valuation", "growth", "profitability", "dividend", "liquidity"}

// FinancialsResult is the fundamentals payload, grouped by schema category.
type FinancialsResult struct {
	StockSymbol string                        `json:"stock_symbol"`
	Financials  map[string]models.StockRecord `json:"financials"`
}

// GetFinancials extracts the fundamental metrics from the quote record. Groups
// with no populated metric are absent rather than empty.
func (uc *StocksUseCase) GetFinancials(ctx context.Context, symbol string) (*FinancialsResult, error) {
	record, err := uc.GetQuote(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("financials %s: %w", symbol, err)
	}

	out := make(map[string]models.StockRecord, len(fundamentalGroups))
	for _, group := range fundamentalGroups {
		section := models.StockRecord{}
		for key := range screener.Schema[group] {
			if v, ok := record[key]; ok {
				section[key] = v
			}
		}
		if len(section) > 0 {
			out[group] = section
		}
	}
	return &FinancialsResult{
		StockSymbol: record.Symbol(),
		Financials:  out,
	}, nil
}

// GetTrending fetches quotes for the universe leaders, dropping symbols whose
// fetch failed.
func (uc *StocksUseCase) GetTrending(ctx context.Context) ([]models.StockRecord, error) {
	symbols := uc.universe
	if len(symbols) > trendingCount {
		symbols = symbols[:trendingCount]
	}

	pool := middleware.NewFetchPool(quoteFunc(uc.GetQuote), uc.metrics, middleware.WithWorkers(uc.workers))
	results := pool.FetchAll(ctx, symbols)

	records := make([]models.StockRecord, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			uc.logger.Warn("trending fetch failed",
				applogger.String("symbol", r.Symbol), applogger.Error(r.Err))
			continue
		}
		records = append(records, r.Record)
	}
	return records, nil
}

// List pages through the universe with optional sector and valuation filters.
// Filter bounds are pointers so a zero bound still filters.
func (uc *StocksUseCase) List(ctx context.Context, req models.ListStocksRequest) (*models.StockList, error) {
	pool := middleware.NewFetchPool(quoteFunc(uc.GetQuote), uc.metrics, middleware.WithWorkers(uc.workers))
	results := pool.FetchAll(ctx, uc.universe)

	all := make([]models.StockRecord, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		record := r.Record
		if req.Sector != "" {
			if sector, ok := record.Text(models.KeySector); !ok || !strings.EqualFold(sector, req.Sector) {
				continue
			}
		}
		if !passesMin(record, models.KeyMarketCap, req.MarketCapMin) {
			continue
		}
		if !passesMin(record, models.KeyPERatio, req.PEMin) {
			continue
		}
		if !passesMax(record, models.KeyPERatio, req.PEMax) {
			continue
		}
		all = append(all, record)
	}
	sort.SliceStable(all, func(i, j int) bool {
		mi, _ := all[i].Number(models.KeyMarketCap)
		mj, _ := all[j].Number(models.KeyMarketCap)
		return mi > mj
	})

	page, pageSize := req.Page, req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(all) {
		start = len(all)
	}
	if end > len(all) {
		end = len(all)
	}

	return &models.StockList{
		Data: all[start:end],
		Pagination: models.Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      len(all),
			TotalPages: (len(all) + pageSize - 1) / pageSize,
		},
	}, nil
}

func passesMin(record models.StockRecord, key string, bound *float64) bool {
	if bound == nil {
		return true
	}
	v, ok := record.Number(key)
	return ok && v >= *bound
}

func passesMax(record models.StockRecord, key string, bound *float64) bool {
	if bound == nil {
		return true
	}
	v, ok := record.Number(key)
	return ok && v <= *bound
}

// quoteFunc adapts a method value to middleware.QuoteSource.
type quoteFunc func(ctx context.Context, symbol string) (models.StockRecord, error)

func (f quoteFunc) GetQuote(ctx context.Context, symbol string) (models.StockRecord, error) {
	return f(ctx, symbol)
}
