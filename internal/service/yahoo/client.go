package yahoo

import (
	"context"
	"fmt"
	"strings"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"

	"StockAI/internal/domain/models"
	drepo "StockAI/internal/domain/repository"
)

// Client implements MarketData backed by Yahoo Finance via finance-go.
// Yahoo needs no API key, which makes it the default backend for local runs.
type Client struct{}

// New creates a Yahoo market data client.
func New() *Client { return &Client{} }

// GetQuote fetches the quote for symbol and flattens it into a record.
func (c *Client) GetQuote(ctx context.Context, symbol string) (models.StockRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	symbol = strings.ToUpper(symbol)

	q, err := equity.Get(symbol)
	if err != nil {
		return nil, fmt.Errorf("yahoo quote %s: %w", symbol, err)
	}
	if q == nil || q.RegularMarketPrice == 0 {
		return nil, fmt.Errorf("yahoo quote %s: %w", symbol, drepo.ErrNotFound)
	}
	return mapEquity(symbol, q), nil
}

// mapEquity flattens an equity quote into a record. Fundamentals come from the
// equity payload; the plain quote feed does not carry them.
func mapEquity(symbol string, q *finance.Equity) models.StockRecord {
	record := models.StockRecord{
		models.KeySymbol:        symbol,
		models.KeyPrice:         q.RegularMarketPrice,
		models.KeyChange:        q.RegularMarketChange,
		models.KeyChangePercent: q.RegularMarketChangePercent,
	}
	if q.ShortName != "" {
		record[models.KeyName] = q.ShortName
	}
	if q.MarketCap > 0 {
		record[models.KeyMarketCap] = float64(q.MarketCap)
	}
	if q.EpsTrailingTwelveMonths != 0 {
		record[models.KeyEPS] = q.EpsTrailingTwelveMonths
		if q.EpsTrailingTwelveMonths > 0 {
			record[models.KeyPERatio] = q.RegularMarketPrice / q.EpsTrailingTwelveMonths
		}
	}
	if q.ForwardPE > 0 {
		record[models.KeyForwardPE] = q.ForwardPE
	}
	if q.PriceToBook > 0 {
		record[models.KeyPriceToBook] = q.PriceToBook
	}
	if q.TrailingAnnualDividendYield > 0 {
		record[models.KeyDividendYield] = q.TrailingAnnualDividendYield * 100
	}
	if q.FiftyTwoWeekHigh > 0 {
		record[models.KeyHigh52W] = q.FiftyTwoWeekHigh
	}
	if q.FiftyTwoWeekLow > 0 {
		record[models.KeyLow52W] = q.FiftyTwoWeekLow
	}
	if q.RegularMarketVolume > 0 {
		record[models.KeyVolume] = float64(q.RegularMarketVolume)
	}
	if q.AverageDailyVolume3Month > 0 {
		record[models.KeyAvgVolume] = float64(q.AverageDailyVolume3Month)
	}
	if q.FullExchangeName != "" {
		record[models.KeyExchange] = q.FullExchangeName
	}
	return record
}

// GetProfile builds a slim profile from quote data. Yahoo's quote feed does
// not carry sector/industry, so those stay absent rather than guessed.
func (c *Client) GetProfile(ctx context.Context, symbol string) (*models.ProfileRecord, error) {
	record, err := c.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	p := &models.ProfileRecord{Symbol: record.Symbol()}
	if name, ok := record.Text(models.KeyName); ok {
		p.Name = name
	}
	if exch, ok := record.Text(models.KeyExchange); ok {
		p.Exchange = exch
	}
	return p, nil
}

// GetHistory fetches daily bars for the lookback window, oldest first.
func (c *Client) GetHistory(ctx context.Context, symbol string, lookback drepo.Lookback) ([]models.PricePoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	symbol = strings.ToUpper(symbol)

	end := time.Now()
	start := end.Add(-lookback.Duration())
	iter := chart.Get(&chart.Params{
		Symbol:   symbol,
		Interval: datetime.OneDay,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
	})

	var series []models.PricePoint
	for iter.Next() {
		b := iter.Bar()
		open, _ := b.Open.Float64()
		high, _ := b.High.Float64()
		low, _ := b.Low.Float64()
		closePx, _ := b.Close.Float64()
		series = append(series, models.PricePoint{
			Time:   time.Unix(int64(b.Timestamp), 0),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePx,
			Volume: float64(b.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("yahoo candles %s: %w", symbol, err)
	}
	return series, nil
}

var _ drepo.MarketData = (*Client)(nil)
