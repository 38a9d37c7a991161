package middleware

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"StockAI/internal/domain/models"
	domrepo "StockAI/internal/domain/repository"
)

// QuoteSource is the minimal fetch interface the pool needs.
type QuoteSource interface {
	GetQuote(ctx context.Context, symbol string) (models.StockRecord, error)
}

// FetchResult carries one symbol's outcome. Record is nil when Err is set.
type FetchResult struct {
	Symbol string
	Record models.StockRecord
	Err    error
}

// FetchPool fans symbol fetches out over a bounded number of workers. Fetching
// full fundamentals per symbol is the dominant screening cost, so the pool
// caps upstream pressure while keeping the scan parallel.
type FetchPool struct {
	source  QuoteSource
	metrics domrepo.Metrics
	workers int
}

type PoolOption func(*FetchPool)

// WithWorkers sets the number of concurrent fetches.
func WithWorkers(n int) PoolOption {
	return func(p *FetchPool) {
		if n > 0 {
			p.workers = n
		}
	}
}

// NewFetchPool creates a pool over source. A nil metrics recorder is allowed.
func NewFetchPool(source QuoteSource, metrics domrepo.Metrics, opts ...PoolOption) *FetchPool {
	p := &FetchPool{
		source:  source,
		metrics: metrics,
		workers: 8,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FetchAll fetches every symbol and returns results in input order. A failed
// or cancelled fetch yields a FetchResult with Err set; the rest of the batch
// still completes unless the context itself is done.
func (p *FetchPool) FetchAll(ctx context.Context, symbols []string) []FetchResult {
	results := make([]FetchResult, len(symbols))
	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := p.workers
	if workers > len(symbols) {
		workers = len(symbols)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = p.fetchOne(ctx, symbols[i])
			}
		}()
	}

	for i := range symbols {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

func (p *FetchPool) fetchOne(ctx context.Context, symbol string) FetchResult {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return FetchResult{Symbol: symbol, Err: fmt.Errorf("symbol empty")}
	}
	if err := ctx.Err(); err != nil {
		return FetchResult{Symbol: symbol, Err: err}
	}

	start := time.Now()
	record, err := p.source.GetQuote(ctx, symbol)
	if p.metrics != nil {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		p.metrics.RecordFetch("pool", outcome)
		p.metrics.RecordLatency("pool_fetch", time.Since(start).Seconds())
	}
	if err != nil {
		return FetchResult{Symbol: symbol, Err: err}
	}
	return FetchResult{Symbol: symbol, Record: record}
}
