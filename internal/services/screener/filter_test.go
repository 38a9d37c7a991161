package screener

import (
	"encoding/json"
	"testing"

	"StockAI/internal/domain/models"
)

func TestMatchesRange(t *testing.T) {
	rec := models.StockRecord{models.KeyPERatio: 18.0}

	if !Matches(rec, models.FilterSpec{models.KeyPERatio: models.MaxOf(20)}) {
		t.Fatalf("pe 18 should pass max 20")
	}
	if Matches(rec, models.FilterSpec{models.KeyPERatio: models.MaxOf(15)}) {
		t.Fatalf("pe 18 should fail max 15")
	}
	if Matches(rec, models.FilterSpec{models.KeyPERatio: models.MinOf(20)}) {
		t.Fatalf("pe 18 should fail min 20")
	}
	if !Matches(rec, models.FilterSpec{models.KeyPERatio: models.Between(10, 20)}) {
		t.Fatalf("pe 18 should pass [10,20]")
	}
}

func TestMatchesMissingKeyPassesVacuously(t *testing.T) {
	rec := models.StockRecord{models.KeySymbol: "C"}
	spec := models.FilterSpec{models.KeyPERatio: models.MaxOf(20)}
	if !Matches(rec, spec) {
		t.Fatalf("missing metric must never disqualify a candidate")
	}

	rec[models.KeyPERatio] = nil
	if !Matches(rec, spec) {
		t.Fatalf("nil metric value must pass vacuously")
	}
}

func TestMatchesZeroBoundIsAFilter(t *testing.T) {
	// a zero bound must not be treated as "no filter"
	rec := models.StockRecord{models.KeyPriceChange3M: -5.0}
	if Matches(rec, models.FilterSpec{models.KeyPriceChange3M: models.MinOf(0)}) {
		t.Fatalf("min 0 must reject negative values")
	}
}

func TestMatchesEquals(t *testing.T) {
	rec := models.StockRecord{models.KeySector: "Technology", models.KeyBeta: 1.0}

	if !Matches(rec, models.FilterSpec{models.KeySector: models.EqualsOf("Technology")}) {
		t.Fatalf("sector equality should pass")
	}
	if Matches(rec, models.FilterSpec{models.KeySector: models.EqualsOf("Energy")}) {
		t.Fatalf("sector mismatch should fail")
	}
	if !Matches(rec, models.FilterSpec{models.KeyBeta: models.EqualsOf(1.0)}) {
		t.Fatalf("numeric equality should pass")
	}
}

func TestMatchesAllConditionsAnded(t *testing.T) {
	rec := models.StockRecord{models.KeyPERatio: 12.0, models.KeyDividendYield: 0.5}
	spec := models.FilterSpec{
		models.KeyPERatio:       models.MaxOf(15),
		models.KeyDividendYield: models.MinOf(1),
	}
	if Matches(rec, spec) {
		t.Fatalf("one failing condition must fail the record")
	}
}

func TestMatchesIdempotent(t *testing.T) {
	rec := models.StockRecord{models.KeyPERatio: 18.0}
	spec := models.FilterSpec{models.KeyPERatio: models.MaxOf(20)}
	first := Matches(rec, spec)
	second := Matches(rec, spec)
	if first != second {
		t.Fatalf("matcher must be pure: got %v then %v", first, second)
	}
}

func TestConditionUnmarshalScalarShorthand(t *testing.T) {
	var spec models.FilterSpec
	raw := `{"sector": "Technology", "beta": 1.5, "pe_ratio": {"max": 20}}`
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if spec[models.KeySector].Equals != "Technology" {
		t.Fatalf("scalar string should become equals condition: %+v", spec[models.KeySector])
	}
	if spec[models.KeyBeta].Equals != 1.5 {
		t.Fatalf("scalar number should become equals condition: %+v", spec[models.KeyBeta])
	}
	if spec[models.KeyPERatio].Max == nil || *spec[models.KeyPERatio].Max != 20 {
		t.Fatalf("object condition should keep max bound: %+v", spec[models.KeyPERatio])
	}
}

func TestHasTechnicalFilter(t *testing.T) {
	if HasTechnicalFilter(models.FilterSpec{models.KeyPERatio: models.MaxOf(20)}) {
		t.Fatalf("valuation-only spec must not trigger enrichment")
	}
	if !HasTechnicalFilter(models.FilterSpec{models.KeyRSI14: models.Between(50, 80)}) {
		t.Fatalf("rsi filter must trigger enrichment")
	}
}
