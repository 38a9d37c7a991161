package screener

import (
	"testing"

	"StockAI/internal/domain/models"
)

func TestScorePEBoundary(t *testing.T) {
	onBoundary := models.StockRecord{models.KeyPERatio: 15.0}
	if got := Score(onBoundary); got != 0 {
		t.Fatalf("pe exactly 15 must contribute 0, got %d", got)
	}
	justUnder := models.StockRecord{models.KeyPERatio: 14.99}
	if got := Score(justUnder); got != 2 {
		t.Fatalf("pe 14.99 must contribute +2, got %d", got)
	}
}

func TestScoreMissingMetricsContributeNothing(t *testing.T) {
	if got := Score(models.StockRecord{}); got != 0 {
		t.Fatalf("empty record must score 0, got %d", got)
	}
}

func TestScoreAccumulates(t *testing.T) {
	rec := models.StockRecord{
		models.KeyPERatio:        12.0, // +2
		models.KeyRevenueGrowth:  25.0, // +2
		models.KeyRSI14:          25.0, // +1
		models.KeyPriceChange3M:  20.0, // +1
		models.KeyReturnOnEquity: 20.0, // +1
		models.KeyDividendYield:  3.0,  // +1
	}
	if got := Score(rec); got != 8 {
		t.Fatalf("expected total 8, got %d", got)
	}
}

func TestScoreNegativeRules(t *testing.T) {
	rec := models.StockRecord{
		models.KeyPERatio:       35.0,  // -1
		models.KeyRevenueGrowth: 2.0,   // -1
		models.KeyRSI14:         75.0,  // -1
		models.KeyPriceChange3M: -12.0, // -1
	}
	if got := Score(rec); got != -4 {
		t.Fatalf("expected total -4, got %d", got)
	}
}

func TestLabelMapping(t *testing.T) {
	cases := []struct {
		score int
		want  models.Signal
	}{
		{4, models.SignalStrongBuy},
		{3, models.SignalBuy},
		{2, models.SignalBuy},
		{0, models.SignalNeutral},
		{-1, models.SignalHold},
		{-2, models.SignalHold},
		{-3, models.SignalSell},
	}
	for _, c := range cases {
		if got := Label(c.score); got != c.want {
			t.Fatalf("score %d: expected %q, got %q", c.score, c.want, got)
		}
	}
}

func TestSignalPriority(t *testing.T) {
	want := map[models.Signal]int{
		models.SignalStrongBuy: 4,
		models.SignalBuy:       3,
		models.SignalNeutral:   2,
		models.SignalHold:      1,
		models.SignalSell:      0,
	}
	for s, p := range want {
		if s.Priority() != p {
			t.Fatalf("%q priority: expected %d, got %d", s, p, s.Priority())
		}
	}
}
