package finnhub

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"StockAI/internal/domain/models"
	drepo "StockAI/internal/domain/repository"
	xhttp "StockAI/pkg/http"
)

// Client implements MarketData backed by the Finnhub REST API.
type Client struct {
	apiKey  string
	baseURL string
	http    *xhttp.Client
}

// New creates a Finnhub market data client.
func New(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://finnhub.io/api/v1"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

func (c *Client) get(ctx context.Context, path string, params map[string][]string, dest interface{}) error {
	if params == nil {
		params = map[string][]string{}
	}
	params["token"] = []string{c.apiKey}
	return c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + path,
		QueryParams: params,
	}, dest)
}

type quoteResponse struct {
	Current   float64 `json:"c"`
	Change    float64 `json:"d"`
	ChangePct float64 `json:"dp"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	Open      float64 `json:"o"`
	PrevClose float64 `json:"pc"`
}

type profileResponse struct {
	Name          string  `json:"name"`
	Ticker        string  `json:"ticker"`
	Exchange      string  `json:"exchange"`
	Industry      string  `json:"finnhubIndustry"`
	Country       string  `json:"country"`
	WebURL        string  `json:"weburl"`
	MarketCapMlns float64 `json:"marketCapitalization"` // millions
}

type metricResponse struct {
	Metric map[string]interface{} `json:"metric"`
}

// metricKeyMap translates Finnhub fundamentals to the shared vocabulary.
var metricKeyMap = map[string]string{
	"peTTM":                          models.KeyPERatio,
	"forwardPE":                      models.KeyForwardPE,
	"pegTTM":                         models.KeyPEGRatio,
	"pbQuarterly":                    models.KeyPriceToBook,
	"psTTM":                          models.KeyPriceToSales,
	"currentEv/ebitdaTTM":            models.KeyEVToEBITDA,
	"epsTTM":                         models.KeyEPS,
	"revenueGrowthTTMYoy":            models.KeyRevenueGrowth,
	"epsGrowthTTMYoy":                models.KeyEarningsGrowth,
	"grossMarginTTM":                 models.KeyGrossMargin,
	"operatingMarginTTM":             models.KeyOperatingMargin,
	"netProfitMarginTTM":             models.KeyProfitMargin,
	"roaTTM":                         models.KeyReturnOnAssets,
	"roeTTM":                         models.KeyReturnOnEquity,
	"roiTTM":                         models.KeyROIC,
	"dividendYieldIndicatedAnnual":   models.KeyDividendYield,
	"dividendGrowthRate5Y":           models.KeyDividendGrowth,
	"payoutRatioTTM":                 models.KeyPayoutRatio,
	"currentRatioQuarterly":          models.KeyCurrentRatio,
	"quickRatioQuarterly":            models.KeyQuickRatio,
	"totalDebt/totalEquityQuarterly": models.KeyDebtToEquity,
	"beta":                           models.KeyBeta,
	"52WeekHigh":                     models.KeyHigh52W,
	"52WeekLow":                      models.KeyLow52W,
	"10DayAverageTradingVolume":      models.KeyAvgVolume,
}

// GetQuote fetches the realtime quote plus fundamental metrics for symbol
// and flattens both into a single record.
func (c *Client) GetQuote(ctx context.Context, symbol string) (models.StockRecord, error) {
	symbol = strings.ToUpper(symbol)

	var q quoteResponse
	if err := c.get(ctx, "/quote", map[string][]string{"symbol": {symbol}}, &q); err != nil {
		return nil, fmt.Errorf("finnhub quote %s: %w", symbol, err)
	}
	// Finnhub answers zeroes for unknown tickers instead of an error.
	if q.Current == 0 && q.PrevClose == 0 {
		return nil, fmt.Errorf("finnhub quote %s: %w", symbol, drepo.ErrNotFound)
	}

	record := models.StockRecord{
		models.KeySymbol:        symbol,
		models.KeyPrice:         q.Current,
		models.KeyChange:        q.Change,
		models.KeyChangePercent: q.ChangePct,
	}

	var p profileResponse
	if err := c.get(ctx, "/stock/profile2", map[string][]string{"symbol": {symbol}}, &p); err == nil {
		if p.Name != "" {
			record[models.KeyName] = p.Name
		}
		if p.Industry != "" {
			record[models.KeyIndustry] = p.Industry
		}
		if p.Exchange != "" {
			record[models.KeyExchange] = p.Exchange
		}
		if p.Country != "" {
			record[models.KeyCountry] = p.Country
		}
		if p.MarketCapMlns > 0 {
			record[models.KeyMarketCap] = p.MarketCapMlns * 1e6
		}
	}

	var m metricResponse
	if err := c.get(ctx, "/stock/metric", map[string][]string{"symbol": {symbol}, "metric": {"all"}}, &m); err == nil {
		for from, to := range metricKeyMap {
			if v, ok := m.Metric[from]; ok && v != nil {
				if f, ok := toFloat(v); ok {
					record[to] = f
				}
			}
		}
	}

	return record, nil
}

// GetProfile fetches the company profile for symbol.
func (c *Client) GetProfile(ctx context.Context, symbol string) (*models.ProfileRecord, error) {
	symbol = strings.ToUpper(symbol)

	var p profileResponse
	if err := c.get(ctx, "/stock/profile2", map[string][]string{"symbol": {symbol}}, &p); err != nil {
		return nil, fmt.Errorf("finnhub profile %s: %w", symbol, err)
	}
	if p.Name == "" && p.Ticker == "" {
		return nil, fmt.Errorf("finnhub profile %s: %w", symbol, drepo.ErrNotFound)
	}
	return &models.ProfileRecord{
		Symbol:   symbol,
		Name:     p.Name,
		Industry: p.Industry,
		Exchange: p.Exchange,
		Country:  p.Country,
		Website:  p.WebURL,
	}, nil
}

type candleResponse struct {
	Status  string    `json:"s"`
	Times   []int64   `json:"t"`
	Opens   []float64 `json:"o"`
	Highs   []float64 `json:"h"`
	Lows    []float64 `json:"l"`
	Closes  []float64 `json:"c"`
	Volumes []float64 `json:"v"`
}

// GetHistory fetches daily candles for the lookback window, oldest first.
func (c *Client) GetHistory(ctx context.Context, symbol string, lookback drepo.Lookback) ([]models.PricePoint, error) {
	symbol = strings.ToUpper(symbol)
	to := time.Now()
	from := to.Add(-lookback.Duration())

	var cr candleResponse
	err := c.get(ctx, "/stock/candle", map[string][]string{
		"symbol":     {symbol},
		"resolution": {"D"},
		"from":       {strconv.FormatInt(from.Unix(), 10)},
		"to":         {strconv.FormatInt(to.Unix(), 10)},
	}, &cr)
	if err != nil {
		return nil, fmt.Errorf("finnhub candles %s: %w", symbol, err)
	}
	if cr.Status != "ok" || len(cr.Closes) == 0 {
		return nil, nil
	}

	series := make([]models.PricePoint, 0, len(cr.Closes))
	for i := range cr.Closes {
		p := models.PricePoint{Close: cr.Closes[i]}
		if i < len(cr.Times) {
			p.Time = time.Unix(cr.Times[i], 0)
		}
		if i < len(cr.Opens) {
			p.Open = cr.Opens[i]
		}
		if i < len(cr.Highs) {
			p.High = cr.Highs[i]
		}
		if i < len(cr.Lows) {
			p.Low = cr.Lows[i]
		}
		if i < len(cr.Volumes) {
			p.Volume = cr.Volumes[i]
		}
		series = append(series, p)
	}
	return series, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

var _ drepo.MarketData = (*Client)(nil)
