package ai

import (
	"context"
	"encoding/json"
	"strings"

	"StockAI/internal/domain/models"
	domsvc "StockAI/internal/domain/service"
	applogger "StockAI/pkg/logger"
)

// StockAnalysis is the structured LLM verdict on one stock.
type StockAnalysis struct {
	Outlook        string   `json:"outlook"`
	KeyStrengths   []string `json:"key_strengths"`
	KeyRisks       []string `json:"key_risks"`
	Recommendation string   `json:"recommendation"`
}

// SentimentAnalysis is the structured sentiment verdict.
type SentimentAnalysis struct {
	OverallSentiment string   `json:"overall_sentiment"`
	Momentum         string   `json:"momentum"`
	KeyFactors       []string `json:"key_factors"`
}

// FundamentalAnalysis is the structured fundamentals verdict.
type FundamentalAnalysis struct {
	Valuation       string `json:"valuation"`
	FinancialHealth string `json:"financial_health"`
	GrowthProspects string `json:"growth_prospects"`
}

// Interpretation is the natural-language screener translation.
type Interpretation struct {
	Filters     models.FilterSpec `json:"filters"`
	Explanation string            `json:"explanation"`
}

// Analyst wraps a TextGenerator with the domain prompts and the graceful
// degradation policy: every operation answers something useful even when the
// provider is down.
type Analyst struct {
	gen    domsvc.TextGenerator
	logger *applogger.Logger
}

// NewAnalyst creates the analyst service.
func NewAnalyst(gen domsvc.TextGenerator, logger *applogger.Logger) *Analyst {
	return &Analyst{gen: gen, logger: logger}
}

// generate runs the prompt through the provider, degrading to the static
// fallback on any failure.
func (a *Analyst) generate(ctx context.Context, prompt string) string {
	if a.gen == nil || !a.gen.Available() {
		return FallbackMessage
	}
	text, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		if a.logger != nil {
			a.logger.Warn("ai generate failed", applogger.Error(err))
		}
		return FallbackMessage
	}
	if strings.TrimSpace(text) == "" {
		return FallbackMessage
	}
	return text
}

// Chat answers a user question with optional stock context.
func (a *Analyst) Chat(ctx context.Context, stockContext, userMessage string) string {
	return a.generate(ctx, chatPrompt(stockContext, userMessage))
}

// ExplainMetric explains one metric and its current value.
func (a *Analyst) ExplainMetric(ctx context.Context, metric string, value interface{}) string {
	return a.generate(ctx, explainMetricPrompt(metric, value))
}

// SummarizeStock produces a short overview of quote plus profile.
func (a *Analyst) SummarizeStock(ctx context.Context, quote models.StockRecord, profile *models.ProfileRecord) string {
	return a.generate(ctx, summarizePrompt(quote, profile))
}

// AnalyzeStock returns the structured analysis, with safe defaults when the
// provider output is not parseable JSON.
func (a *Analyst) AnalyzeStock(ctx context.Context, quote models.StockRecord, profile *models.ProfileRecord) StockAnalysis {
	out := StockAnalysis{
		Outlook:        "neutral",
		KeyStrengths:   []string{},
		KeyRisks:       []string{},
		Recommendation: "hold",
	}
	a.generateInto(ctx, analyzeStockPrompt(quote, profile), &out)
	return out
}

// AnalyzeSentiment returns the structured sentiment verdict.
func (a *Analyst) AnalyzeSentiment(ctx context.Context, quote models.StockRecord) SentimentAnalysis {
	out := SentimentAnalysis{
		OverallSentiment: "neutral",
		Momentum:         "moderate",
		KeyFactors:       []string{},
	}
	a.generateInto(ctx, sentimentPrompt(quote), &out)
	return out
}

// AnalyzeFundamentals returns the structured fundamentals verdict.
func (a *Analyst) AnalyzeFundamentals(ctx context.Context, quote models.StockRecord) FundamentalAnalysis {
	out := FundamentalAnalysis{
		Valuation:       "fair",
		FinancialHealth: "moderate",
		GrowthProspects: "moderate",
	}
	a.generateInto(ctx, fundamentalsPrompt(quote), &out)
	return out
}

// GenerateReport renders the long-form report text.
func (a *Analyst) GenerateReport(ctx context.Context, quote models.StockRecord, analysis *StockAnalysis) string {
	return a.generate(ctx, reportPrompt(quote, analysis))
}

// InterpretScreenerQuery translates free text into a FilterSpec. On provider
// failure or unparseable output it returns an empty filter with an
// explanatory message, never an error.
func (a *Analyst) InterpretScreenerQuery(ctx context.Context, query string) Interpretation {
	out := Interpretation{
		Filters:     models.FilterSpec{},
		Explanation: "Could not interpret query",
	}
	a.generateInto(ctx, interpretQueryPrompt(query), &out)
	if out.Filters == nil {
		out.Filters = models.FilterSpec{}
	}
	return out
}

// generateInto parses the first JSON object found in the provider's answer
// into dest, leaving dest untouched when nothing parseable came back.
func (a *Analyst) generateInto(ctx context.Context, prompt string, dest interface{}) {
	text := a.generate(ctx, prompt)
	if text == FallbackMessage {
		return
	}
	raw, ok := ExtractJSON(text)
	if !ok {
		return
	}
	if err := json.Unmarshal(raw, dest); err != nil && a.logger != nil {
		a.logger.Warn("ai response parse failed", applogger.Error(err))
	}
}

// ExtractJSON pulls the outermost JSON object out of free text; LLMs often
// wrap the payload in prose or code fences.
func ExtractJSON(text string) ([]byte, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	raw := []byte(text[start : end+1])
	if !json.Valid(raw) {
		return nil, false
	}
	return raw, true
}
