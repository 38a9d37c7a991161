package middleware

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"StockAI/internal/domain/models"
)

type fakeSource struct {
	mu       sync.Mutex
	fail     map[string]error
	inFlight int32
	peak     int32
}

func (f *fakeSource) GetQuote(_ context.Context, symbol string) (models.StockRecord, error) {
	cur := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		old := atomic.LoadInt32(&f.peak)
		if cur <= old || atomic.CompareAndSwapInt32(&f.peak, old, cur) {
			break
		}
	}

	f.mu.Lock()
	err := f.fail[symbol]
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return models.StockRecord{models.KeySymbol: symbol}, nil
}

func TestFetchAllPreservesOrder(t *testing.T) {
	pool := NewFetchPool(&fakeSource{}, nil, WithWorkers(4))
	symbols := []string{"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA"}

	results := pool.FetchAll(context.Background(), symbols)
	if len(results) != len(symbols) {
		t.Fatalf("expected %d results, got %d", len(symbols), len(results))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("unexpected error for %s: %v", symbols[i], r.Err)
		}
		if r.Record.Symbol() != symbols[i] {
			t.Fatalf("result %d out of order: got %s want %s", i, r.Record.Symbol(), symbols[i])
		}
	}
}

func TestFetchAllIsolatesFailures(t *testing.T) {
	src := &fakeSource{fail: map[string]error{"MSFT": errors.New("rate limited")}}
	pool := NewFetchPool(src, nil, WithWorkers(2))

	results := pool.FetchAll(context.Background(), []string{"AAPL", "MSFT", "GOOGL"})
	if results[0].Err != nil || results[2].Err != nil {
		t.Fatalf("healthy symbols should succeed: %v %v", results[0].Err, results[2].Err)
	}
	if results[1].Err == nil {
		t.Fatalf("expected MSFT to fail")
	}
}

func TestFetchAllRespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewFetchPool(&fakeSource{}, nil, WithWorkers(2))
	results := pool.FetchAll(ctx, []string{"AAPL", "MSFT"})
	for _, r := range results {
		if r.Err == nil {
			t.Fatalf("expected cancellation error for %s", r.Symbol)
		}
	}
}

func TestFetchAllRejectsEmptySymbol(t *testing.T) {
	pool := NewFetchPool(&fakeSource{}, nil)
	results := pool.FetchAll(context.Background(), []string{" "})
	if results[0].Err == nil {
		t.Fatalf("expected error for blank symbol")
	}
}
