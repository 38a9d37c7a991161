package di

import (
	"fmt"
	"net"
	"strconv"

	"github.com/redis/go-redis/v9"

	"StockAI/internal/domain/repository"
	domsvc "StockAI/internal/domain/service"
	"StockAI/internal/handler/api"
	icache "StockAI/internal/service/cache"
	"StockAI/internal/service/finnhub"
	"StockAI/internal/service/yahoo"
	"StockAI/internal/services/ai"
	"StockAI/internal/usecase"
	pkgcache "StockAI/pkg/cache"
	"StockAI/pkg/config"
	applogger "StockAI/pkg/logger"
	"StockAI/pkg/metrics"
	"StockAI/pkg/queue"
	"StockAI/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lc := &applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}
	if lc.Level == "" {
		lc.Level = "info"
	}
	if lc.Format == "" {
		lc.Format = "console"
	}
	if lc.Output == "" {
		lc.Output = "stdout"
	}
	return applogger.New(lc)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideMarketData selects the quote provider from config.
func ProvideMarketData(cfg *config.Config) (repository.MarketData, error) {
	switch cfg.Backend.Type {
	case "finnhub":
		return finnhub.New(cfg.Finnhub.APIKey, cfg.Finnhub.BaseURL, cfg.Finnhub.Timeout), nil
	case "yahoo":
		return yahoo.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend type %q", cfg.Backend.Type)
	}
}

// ProvideCacheService creates the record cache: layered memory-over-Redis
// when Redis is enabled so instances share warm quotes, plain in-process
// memory otherwise.
func ProvideCacheService(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Redis.Enabled {
		opts := []pkgcache.MemoryOption{}
		if cfg.Cache.MaxEntries > 0 {
			opts = append(opts, pkgcache.WithMemoryMaxSize(cfg.Cache.MaxEntries))
		}
		return pkgcache.NewMemoryCache(opts...), nil
	}

	host, portStr, err := net.SplitHostPort(cfg.Redis.Addr)
	if err != nil {
		return nil, fmt.Errorf("redis addr: %w", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("redis port: %w", err)
	}
	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(host),
		pkgcache.WithRedisPort(port),
		pkgcache.WithRedisPassword(cfg.Redis.Password),
		pkgcache.WithRedisDB(cfg.Redis.DB),
	)
	if err != nil {
		return nil, err
	}
	return pkgcache.NewLayeredCache(rc), nil
}

// ProvideBytesCache creates the rendered-response cache for the screener.
func ProvideBytesCache(cfg *config.Config) icache.BytesCache {
	if cfg.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideGenerator creates the OpenRouter text generator. With no API key
// configured it reports unavailable and the analyst falls back to canned
// replies.
func ProvideGenerator(cfg *config.Config) domsvc.TextGenerator {
	return ai.NewOpenRouterGenerator(cfg)
}

// ProvideAnalyst creates the AI analyst.
func ProvideAnalyst(gen domsvc.TextGenerator, logger *applogger.Logger) *ai.Analyst {
	return ai.NewAnalyst(gen, logger)
}

// ProvideScreenUseCase creates the screening use case.
func ProvideScreenUseCase(
	market repository.MarketData,
	cache pkgcache.Service,
	analyst *ai.Analyst,
	m repository.Metrics,
	logger *applogger.Logger,
	cfg *config.Config,
) *usecase.ScreenUseCase {
	return usecase.NewScreenUseCase(market, cache, analyst, m, logger, usecase.ScreenConfig{
		Universe:  cfg.Screener.Universe,
		ScanCap:   cfg.Screener.ScanCap,
		ResultCap: cfg.Screener.ResultCap,
		Workers:   cfg.Screener.Workers,
		Timeout:   cfg.Screener.Timeout,
		CacheTTL:  cfg.Cache.QuoteTTL,
	})
}

// ProvideStocksUseCase creates the per-symbol use case.
func ProvideStocksUseCase(
	market repository.MarketData,
	cache pkgcache.Service,
	m repository.Metrics,
	logger *applogger.Logger,
	cfg *config.Config,
) *usecase.StocksUseCase {
	return usecase.NewStocksUseCase(market, cache, m, logger,
		cfg.Screener.Universe, cfg.Screener.Workers, cfg.Cache.QuoteTTL)
}

// ProvideChatUseCase creates the conversational use case.
func ProvideChatUseCase(stocks *usecase.StocksUseCase, analyst *ai.Analyst, logger *applogger.Logger) *usecase.ChatUseCase {
	return usecase.NewChatUseCase(stocks, analyst, logger)
}

// ProvideAnalysisUseCase creates the analysis use case.
func ProvideAnalysisUseCase(stocks *usecase.StocksUseCase, analyst *ai.Analyst, logger *applogger.Logger) *usecase.AnalysisUseCase {
	return usecase.NewAnalysisUseCase(stocks, analyst, logger)
}

// ProvideStocksHandler creates the stocks HTTP handler.
func ProvideStocksHandler(logger *applogger.Logger, stocks *usecase.StocksUseCase) *api.StocksHandler {
	return api.NewStocksHandler(logger, stocks)
}

// ProvideScreenerHandler creates the screener HTTP handler with its
// response cache attached.
func ProvideScreenerHandler(logger *applogger.Logger, screen *usecase.ScreenUseCase, bc icache.BytesCache, cfg *config.Config) *api.ScreenerHandler {
	h := api.NewScreenerHandler(logger, screen)
	h.SetCache(bc)
	h.SetCacheTTL(cfg.Cache.ScreenTTL)
	return h
}

// ProvideChatHandler creates the chat HTTP handler.
func ProvideChatHandler(logger *applogger.Logger, chat *usecase.ChatUseCase) *api.ChatHandler {
	return api.NewChatHandler(logger, chat)
}

// ProvideAnalysisHandler creates the analysis HTTP handler.
func ProvideAnalysisHandler(logger *applogger.Logger, analysis *usecase.AnalysisUseCase) *api.AnalysisHandler {
	return api.NewAnalysisHandler(logger, analysis)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	stocksH *api.StocksHandler,
	screenerH *api.ScreenerHandler,
	chatH *api.ChatHandler,
	analysisH *api.AnalysisHandler,
) *server.App {
	app := server.New(cfg, logger, stocksH, screenerH, chatH, analysisH)

	// Aggregated error logs drain to a Redis queue when both are enabled.
	if cfg.Redis.Enabled && cfg.Log.Collect {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		app.SetRedisClient(client)
		app.SetLogQueue(queue.NewRedisPublisher(logger, client, queue.WithKeyPrefix("stockai:logs")))
	}

	return app
}
