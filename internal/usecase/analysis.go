package usecase

import (
	"context"
	"fmt"
	"time"

	"StockAI/internal/domain/models"
	"StockAI/internal/services/ai"
	"StockAI/internal/services/screener"
	applogger "StockAI/pkg/logger"
)

// AnalysisUseCase produces AI-backed analyses of a single stock.
type AnalysisUseCase struct {
	stocks  *StocksUseCase
	analyst *ai.Analyst
	logger  *applogger.Logger
}

func NewAnalysisUseCase(stocks *StocksUseCase, analyst *ai.Analyst, logger *applogger.Logger) *AnalysisUseCase {
	return &AnalysisUseCase{stocks: stocks, analyst: analyst, logger: logger}
}

// FullAnalysis is the complete analysis payload.
type FullAnalysis struct {
	StockSymbol string             `json:"stock_symbol"`
	Quote       models.StockRecord `json:"quote"`
	Analysis    ai.StockAnalysis   `json:"analysis"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// Analyze runs the structured LLM analysis over quote plus profile.
func (uc *AnalysisUseCase) Analyze(ctx context.Context, symbol string) (*FullAnalysis, error) {
	record, err := uc.stocks.GetQuote(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", symbol, err)
	}
	profile, err := uc.stocks.GetProfile(ctx, symbol)
	if err != nil {
		uc.logger.Warn("analysis profile fetch failed",
			applogger.String("symbol", symbol), applogger.Error(err))
		profile = nil
	}

	// annotate with the heuristic label so the LLM sees it alongside the raw
	// metrics and the payload matches what the screener reports
	record = record.Clone()
	record[models.KeyAISignal] = string(screener.SignalFor(record))

	analysis := uc.analyst.AnalyzeStock(ctx, record, profile)
	return &FullAnalysis{
		StockSymbol: record.Symbol(),
		Quote:       record,
		Analysis:    analysis,
		GeneratedAt: time.Now(),
	}, nil
}

// SentimentResult is the sentiment payload.
type SentimentResult struct {
	StockSymbol string               `json:"stock_symbol"`
	Sentiment   ai.SentimentAnalysis `json:"sentiment"`
}

// Sentiment runs the sentiment analysis over the current quote.
func (uc *AnalysisUseCase) Sentiment(ctx context.Context, symbol string) (*SentimentResult, error) {
	record, err := uc.stocks.GetQuote(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("sentiment %s: %w", symbol, err)
	}
	return &SentimentResult{
		StockSymbol: record.Symbol(),
		Sentiment:   uc.analyst.AnalyzeSentiment(ctx, record),
	}, nil
}

// FundamentalsResult is the fundamentals payload.
type FundamentalsResult struct {
	StockSymbol  string                 `json:"stock_symbol"`
	Fundamentals ai.FundamentalAnalysis `json:"fundamentals"`
}

// Fundamentals runs the fundamentals analysis over the current quote.
func (uc *AnalysisUseCase) Fundamentals(ctx context.Context, symbol string) (*FundamentalsResult, error) {
	record, err := uc.stocks.GetQuote(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fundamentals %s: %w", symbol, err)
	}
	return &FundamentalsResult{
		StockSymbol:  record.Symbol(),
		Fundamentals: uc.analyst.AnalyzeFundamentals(ctx, record),
	}, nil
}

// Report is the long-form report payload.
type Report struct {
	StockSymbol string    `json:"stock_symbol"`
	Report      string    `json:"report"`
	GeneratedAt time.Time `json:"generated_at"`
}

// GenerateReport produces the long-form report, seeding it with the structured
// analysis so the two stay consistent.
func (uc *AnalysisUseCase) GenerateReport(ctx context.Context, symbol string) (*Report, error) {
	full, err := uc.Analyze(ctx, symbol)
	if err != nil {
		return nil, err
	}
	text := uc.analyst.GenerateReport(ctx, full.Quote, &full.Analysis)
	return &Report{
		StockSymbol: full.StockSymbol,
		Report:      text,
		GeneratedAt: time.Now(),
	}, nil
}
