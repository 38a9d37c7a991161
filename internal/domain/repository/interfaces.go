package repository

import (
	"context"
	"errors"

	"StockAI/internal/domain/models"
)

// ErrNotFound is returned by providers when a symbol is unknown or the
// upstream answered with an empty record. Callers degrade per symbol.
var ErrNotFound = errors.New("symbol not found")

// MarketData supplies raw quote/profile/history data per symbol.
// Implementations must treat every call as potentially returning materially
// different data; caching happens in front of this interface, never behind it.
type MarketData interface {
	GetQuote(ctx context.Context, symbol string) (models.StockRecord, error)
	GetProfile(ctx context.Context, symbol string) (*models.ProfileRecord, error)
	GetHistory(ctx context.Context, symbol string, lookback Lookback) ([]models.PricePoint, error)
}

// Metrics records operational measurements for screening and provider calls.
type Metrics interface {
	RecordFetch(provider, outcome string)
	RecordScreen(matched, scanned int)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
