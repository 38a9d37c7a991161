package models

// Requests for the public HTTP endpoints. Defined in domain for consistency and reuse.

type ScreenRequest struct {
	Filters FilterSpec `json:"filters" validate:"required"`
	Limit   int        `json:"limit" default:"50" validate:"gte=1,lte=200"`
}

type NaturalLanguageScreenRequest struct {
	Query string `json:"query" validate:"required,min=3,max=500"`
	Limit int    `json:"limit" default:"50" validate:"gte=1,lte=200"`
}

type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required"`
}

type ChatRequest struct {
	Messages    []ChatMessage `json:"messages" validate:"required,min=1,dive"`
	StockSymbol string        `json:"stock_symbol" validate:"omitempty,max=12"`
}

type ExplainMetricRequest struct {
	StockSymbol string `json:"stock_symbol" validate:"required,max=12"`
	Metric      string `json:"metric" validate:"required,max=64"`
}

type SummarizeRequest struct {
	StockSymbol string `json:"stock_symbol" validate:"required,max=12"`
}

type AnalysisRequest struct {
	StockSymbol string `json:"stock_symbol" validate:"required,max=12"`
}

type ListStocksRequest struct {
	Page         int      `query:"page" json:"page" default:"1" validate:"gte=1"`
	PageSize     int      `query:"page_size" json:"page_size" default:"20" validate:"gte=1,lte=100"`
	Sector       string   `query:"sector" json:"sector"`
	MarketCapMin *float64 `query:"market_cap_min" json:"market_cap_min"`
	PEMin        *float64 `query:"pe_min" json:"pe_min"`
	PEMax        *float64 `query:"pe_max" json:"pe_max"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// StockList is the paginated listing payload.
type StockList struct {
	Data       []StockRecord `json:"data"`
	Pagination Pagination    `json:"pagination"`
}
