package ai

import (
	"context"
	"errors"
	"testing"

	"StockAI/internal/domain/models"
)

type stubGenerator struct {
	text      string
	err       error
	available bool
}

func (s *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}

func (s *stubGenerator) Available() bool { return s.available }

func TestChatFallsBackWhenUnavailable(t *testing.T) {
	a := NewAnalyst(&stubGenerator{available: false}, nil)
	got := a.Chat(context.Background(), "", "what is a P/E ratio?")
	if got != FallbackMessage {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestChatFallsBackOnProviderError(t *testing.T) {
	a := NewAnalyst(&stubGenerator{available: true, err: errors.New("upstream 503")}, nil)
	got := a.Chat(context.Background(), "ctx", "hello")
	if got != FallbackMessage {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestAnalyzeStockParsesJSON(t *testing.T) {
	text := `Here you go:
{"outlook": "bullish", "key_strengths": ["growth"], "key_risks": ["valuation"], "recommendation": "buy"}`
	a := NewAnalyst(&stubGenerator{available: true, text: text}, nil)
	got := a.AnalyzeStock(context.Background(), models.StockRecord{}, nil)
	if got.Outlook != "bullish" || got.Recommendation != "buy" {
		t.Fatalf("unexpected analysis: %+v", got)
	}
}

func TestAnalyzeStockDefaultsOnGarbage(t *testing.T) {
	a := NewAnalyst(&stubGenerator{available: true, text: "I cannot answer that."}, nil)
	got := a.AnalyzeStock(context.Background(), models.StockRecord{}, nil)
	if got.Outlook != "neutral" || got.Recommendation != "hold" {
		t.Fatalf("expected safe defaults, got %+v", got)
	}
}

func TestInterpretScreenerQuery(t *testing.T) {
	text := `{"filters": {"market_cap": {"min": 1000000000}, "pe_ratio": {"max": 20}}, "explanation": "Large caps under 20x earnings"}`
	a := NewAnalyst(&stubGenerator{available: true, text: text}, nil)
	got := a.InterpretScreenerQuery(context.Background(), "large cap cheap stocks")
	cond, ok := got.Filters[models.KeyMarketCap]
	if !ok || cond.Min == nil || *cond.Min != 1_000_000_000 {
		t.Fatalf("expected market cap min bound, got %+v", got.Filters)
	}
	if got.Explanation != "Large caps under 20x earnings" {
		t.Fatalf("unexpected explanation %q", got.Explanation)
	}
}

func TestInterpretScreenerQueryFallback(t *testing.T) {
	a := NewAnalyst(&stubGenerator{available: true, err: errors.New("down")}, nil)
	got := a.InterpretScreenerQuery(context.Background(), "anything")
	if len(got.Filters) != 0 {
		t.Fatalf("expected empty filters, got %+v", got.Filters)
	}
	if got.Explanation != "Could not interpret query" {
		t.Fatalf("unexpected explanation %q", got.Explanation)
	}
}

func TestExtractJSON(t *testing.T) {
	raw, ok := ExtractJSON("```json\n{\"a\": 1}\n```")
	if !ok || string(raw) != `{"a": 1}` {
		t.Fatalf("expected embedded object, got %q ok=%v", raw, ok)
	}
	if _, ok := ExtractJSON("no json here"); ok {
		t.Fatalf("expected no object")
	}
}
