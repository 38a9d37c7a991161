package usecase

import (
	"context"
	"fmt"

	"StockAI/internal/domain/models"
	"StockAI/internal/services/ai"
	applogger "StockAI/pkg/logger"
)

// ChatUseCase answers conversational questions, optionally grounded in a
// stock's current record. AI failures degrade to the static fallback text.
type ChatUseCase struct {
	stocks  *StocksUseCase
	analyst *ai.Analyst
	logger  *applogger.Logger
}

func NewChatUseCase(stocks *StocksUseCase, analyst *ai.Analyst, logger *applogger.Logger) *ChatUseCase {
	return &ChatUseCase{stocks: stocks, analyst: analyst, logger: logger}
}

// ChatReply is the chat endpoint payload.
type ChatReply struct {
	Response    string `json:"response"`
	StockSymbol string `json:"stock_symbol,omitempty"`
}

// Chat answers the last user message. When a symbol is given, its current
// quote is folded into the prompt context; a failed quote fetch is logged and
// the chat continues without it.
func (uc *ChatUseCase) Chat(ctx context.Context, req models.ChatRequest) (*ChatReply, error) {
	last := req.Messages[len(req.Messages)-1]

	stockContext := ""
	if req.StockSymbol != "" {
		record, err := uc.stocks.GetQuote(ctx, req.StockSymbol)
		if err != nil {
			uc.logger.Warn("chat context fetch failed",
				applogger.String("symbol", req.StockSymbol), applogger.Error(err))
		} else {
			stockContext = ai.RecordContext(record)
		}
	}

	answer := uc.analyst.Chat(ctx, stockContext, last.Content)
	return &ChatReply{Response: answer, StockSymbol: req.StockSymbol}, nil
}

// ExplainReply is the metric explanation payload.
type ExplainReply struct {
	StockSymbol string      `json:"stock_symbol"`
	Metric      string      `json:"metric"`
	Value       interface{} `json:"value,omitempty"`
	Explanation string      `json:"explanation"`
}

// ExplainMetric explains one metric using the symbol's current value.
func (uc *ChatUseCase) ExplainMetric(ctx context.Context, req models.ExplainMetricRequest) (*ExplainReply, error) {
	record, err := uc.stocks.GetQuote(ctx, req.StockSymbol)
	if err != nil {
		return nil, fmt.Errorf("explain %s: %w", req.StockSymbol, err)
	}

	value := record[req.Metric]
	explanation := uc.analyst.ExplainMetric(ctx, req.Metric, value)
	return &ExplainReply{
		StockSymbol: record.Symbol(),
		Metric:      req.Metric,
		Value:       value,
		Explanation: explanation,
	}, nil
}

// SummaryReply is the stock summary payload.
type SummaryReply struct {
	StockSymbol string `json:"stock_symbol"`
	Summary     string `json:"summary"`
}

// Summarize produces a short overview of the stock.
func (uc *ChatUseCase) Summarize(ctx context.Context, req models.SummarizeRequest) (*SummaryReply, error) {
	record, err := uc.stocks.GetQuote(ctx, req.StockSymbol)
	if err != nil {
		return nil, fmt.Errorf("summarize %s: %w", req.StockSymbol, err)
	}
	profile, err := uc.stocks.GetProfile(ctx, req.StockSymbol)
	if err != nil {
		// summary works from the quote alone
		profile = nil
	}

	summary := uc.analyst.SummarizeStock(ctx, record, profile)
	return &SummaryReply{StockSymbol: record.Symbol(), Summary: summary}, nil
}
