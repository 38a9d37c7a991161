package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"StockAI/internal/domain/models"
	domrepo "StockAI/internal/domain/repository"
	"StockAI/internal/middleware"
	"StockAI/internal/services/ai"
	"StockAI/internal/services/indicators"
	"StockAI/internal/services/screener"
	pkgcache "StockAI/pkg/cache"
	applogger "StockAI/pkg/logger"
)

// ScreenConfig bounds one screening run.
type ScreenConfig struct {
	Universe  []string
	ScanCap   int
	ResultCap int
	Workers   int
	Timeout   time.Duration
	CacheTTL  time.Duration
}

func (c *ScreenConfig) applyDefaults() {
	if len(c.Universe) == 0 {
		c.Universe = DefaultUniverse
	}
	if c.ScanCap <= 0 {
		c.ScanCap = 200
	}
	if c.ResultCap <= 0 {
		c.ResultCap = 50
	}
	if c.Workers <= 0 {
		c.Workers = 8
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 5 * time.Minute
	}
}

// ScreenUseCase drives the screening flow: fetch candidates over a bounded
// pool, enrich with technical indicators when a technical key is filtered,
// match, score, rank, truncate. Per-symbol failures are counted in the report
// and never abort the run.
type ScreenUseCase struct {
	market  domrepo.MarketData
	cache   pkgcache.Service
	analyst *ai.Analyst
	metrics domrepo.Metrics
	logger  *applogger.Logger
	cfg     ScreenConfig
}

func NewScreenUseCase(
	market domrepo.MarketData,
	cache pkgcache.Service,
	analyst *ai.Analyst,
	metrics domrepo.Metrics,
	logger *applogger.Logger,
	cfg ScreenConfig,
) *ScreenUseCase {
	cfg.applyDefaults()
	return &ScreenUseCase{
		market:  market,
		cache:   cache,
		analyst: analyst,
		metrics: metrics,
		logger:  logger,
		cfg:     cfg,
	}
}

// enrichingSource fetches the screening record for one symbol: cached quote
// plus, when requested, indicators computed from a year of daily history.
type enrichingSource struct {
	uc        *ScreenUseCase
	technical bool
}

func (s *enrichingSource) GetQuote(ctx context.Context, symbol string) (models.StockRecord, error) {
	key := pkgcache.GenerateKeyWithParams("screen", symbol, s.technical)
	return pkgcache.Remember(ctx, s.uc.cache, key, s.uc.cfg.CacheTTL, func(ctx context.Context) (models.StockRecord, error) {
		record, err := s.uc.market.GetQuote(ctx, symbol)
		if err != nil {
			return nil, err
		}
		if s.technical {
			series, err := s.uc.market.GetHistory(ctx, symbol, domrepo.Lookback1Y)
			if err != nil {
				// quote stands on its own; technical keys stay missing
				s.uc.logger.Warn("history fetch failed",
					applogger.String("symbol", symbol), applogger.Error(err))
			} else {
				record.Merge(indicators.Compute(series))
			}
		}
		return record, nil
	})
}

// Screen runs spec over the configured universe. limit further truncates below
// the result cap when positive.
func (uc *ScreenUseCase) Screen(ctx context.Context, spec models.FilterSpec, limit int) (*models.ScreenResponse, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()

	symbols := uc.cfg.Universe
	if len(symbols) > uc.cfg.ScanCap {
		symbols = symbols[:uc.cfg.ScanCap]
	}

	source := &enrichingSource{uc: uc, technical: screener.HasTechnicalFilter(spec)}
	pool := middleware.NewFetchPool(source, uc.metrics, middleware.WithWorkers(uc.cfg.Workers))
	results := pool.FetchAll(ctx, symbols)

	report := models.ScreenReport{Scanned: len(symbols)}
	matched := make([]models.StockRecord, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", r.Symbol, r.Err))
			uc.logger.Warn("screen fetch failed",
				applogger.String("symbol", r.Symbol), applogger.Error(r.Err))
			uc.metrics.RecordError("screen_fetch")
			continue
		}
		if !screener.Matches(r.Record, spec) {
			continue
		}
		record := r.Record.Clone()
		score := screener.Score(record)
		record[models.KeySignalScore] = float64(score)
		record[models.KeyAISignal] = string(screener.Label(score))
		matched = append(matched, record)
	}
	report.Matched = len(matched)

	screener.Rank(matched, spec)

	maxResults := uc.cfg.ResultCap
	if limit > 0 && limit < maxResults {
		maxResults = limit
	}
	if len(matched) > maxResults {
		matched = matched[:maxResults]
	}

	uc.metrics.RecordScreen(report.Matched, report.Scanned)
	uc.metrics.RecordLatency("screen", time.Since(start).Seconds())
	uc.logger.Info("screen complete",
		applogger.Int("scanned", report.Scanned),
		applogger.Int("matched", report.Matched),
		applogger.Int("failed", report.Failed),
		applogger.Duration("took", time.Since(start)))

	return &models.ScreenResponse{
		Count:   len(matched),
		Results: matched,
		Report:  report,
	}, nil
}

// ScreenPreset runs one of the named preset filter bundles.
func (uc *ScreenUseCase) ScreenPreset(ctx context.Context, name string, limit int) (*models.ScreenResponse, error) {
	preset, ok := screener.Presets[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("preset %q: %w", name, domrepo.ErrNotFound)
	}
	return uc.Screen(ctx, preset.Filters, limit)
}

// Presets lists the available preset bundles.
func (uc *ScreenUseCase) Presets() map[string]models.Preset {
	return screener.Presets
}

// FilterSchema exposes the filter catalog grouped by semantic area.
func (uc *ScreenUseCase) FilterSchema() map[string]map[string]screener.FieldSpec {
	return screener.Schema
}

// ScreenNaturalLanguage interprets a free-text query into filters and screens
// with them. Interpretation failure degrades to an empty filter set with the
// explanatory message, never an error.
func (uc *ScreenUseCase) ScreenNaturalLanguage(ctx context.Context, query string, limit int) (*models.InterpretedScreen, error) {
	interp := uc.analyst.InterpretScreenerQuery(ctx, query)

	resp, err := uc.Screen(ctx, interp.Filters, limit)
	if err != nil {
		return nil, err
	}
	return &models.InterpretedScreen{
		OriginalQuery:      query,
		InterpretedFilters: interp.Filters,
		Interpretation:     interp.Explanation,
		Results:            resp.Results,
		Count:              resp.Count,
		Report:             resp.Report,
	}, nil
}
