package screener

import (
	"testing"

	"StockAI/internal/domain/models"
)

func TestRankClosenessToMinBound(t *testing.T) {
	spec := models.FilterSpec{models.KeyMarketCap: models.MinOf(1_000_000_000)}
	near := models.StockRecord{models.KeySymbol: "NEAR", models.KeyMarketCap: 1_100_000_000.0}
	far := models.StockRecord{models.KeySymbol: "FAR", models.KeyMarketCap: 5_000_000_000.0}

	records := []models.StockRecord{far, near}
	Rank(records, spec)

	if records[0].Symbol() != "NEAR" {
		t.Fatalf("record closer to the min bound must rank first, got %s", records[0].Symbol())
	}
}

func TestRankSignalBreaksTies(t *testing.T) {
	spec := models.FilterSpec{models.KeyPERatio: models.MaxOf(20)}
	buy := models.StockRecord{
		models.KeySymbol: "BUY", models.KeyPERatio: 18.0,
		models.KeyAISignal: string(models.SignalStrongBuy),
	}
	sell := models.StockRecord{
		models.KeySymbol: "SELL", models.KeyPERatio: 18.0,
		models.KeyAISignal: string(models.SignalSell),
	}

	records := []models.StockRecord{sell, buy}
	Rank(records, spec)

	if records[0].Symbol() != "BUY" {
		t.Fatalf("stronger signal must win on equal closeness, got %s", records[0].Symbol())
	}
}

func TestRankStableOnExactTies(t *testing.T) {
	spec := models.FilterSpec{}
	a := models.StockRecord{models.KeySymbol: "A"}
	b := models.StockRecord{models.KeySymbol: "B"}
	records := []models.StockRecord{a, b}
	Rank(records, spec)
	if records[0].Symbol() != "A" || records[1].Symbol() != "B" {
		t.Fatalf("equal scores must keep collection order, got %s,%s",
			records[0].Symbol(), records[1].Symbol())
	}
}

func TestRelevanceScoreClipsNegativeCloseness(t *testing.T) {
	// value far beyond the bound: closeness clips to 0, leaving only signal weight
	spec := models.FilterSpec{models.KeyPERatio: models.MinOf(10)}
	rec := models.StockRecord{
		models.KeyPERatio:  1000.0,
		models.KeyAISignal: string(models.SignalSell),
	}
	if got := RelevanceScore(rec, spec); got != 0 {
		t.Fatalf("expected clipped score 0, got %v", got)
	}
}

func TestRelevanceScoreDefaultsToNeutralSignal(t *testing.T) {
	rec := models.StockRecord{models.KeySymbol: "X"}
	if got := RelevanceScore(rec, models.FilterSpec{}); got != 1.0 {
		t.Fatalf("unsignalled record should carry neutral weight 1.0, got %v", got)
	}
}

func TestRelevanceScoreSmallBoundNormalization(t *testing.T) {
	// bounds below 1 normalize by 1 to avoid division blow-ups
	spec := models.FilterSpec{models.KeyDebtToEquity: models.MaxOf(0.5)}
	rec := models.StockRecord{
		models.KeyDebtToEquity: 0.5,
		models.KeyAISignal:     string(models.SignalSell),
	}
	if got := RelevanceScore(rec, spec); got != 1.0 {
		t.Fatalf("exact bound hit should score full closeness 1.0, got %v", got)
	}
}
