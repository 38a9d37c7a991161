package api

import (
	"github.com/labstack/echo/v4"

	"StockAI/internal/domain/models"
	"StockAI/internal/usecase"
	xhttp "StockAI/pkg/http"
	applogger "StockAI/pkg/logger"
)

// StocksHandler serves the direct per-symbol endpoints and the listing.
type StocksHandler struct {
	logger *applogger.Logger
	stocks *usecase.StocksUseCase
}

func NewStocksHandler(logger *applogger.Logger, stocks *usecase.StocksUseCase) *StocksHandler {
	return &StocksHandler{logger: logger, stocks: stocks}
}

func (h *StocksHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/stocks")
	g.GET("/quote/:symbol", h.Quote)
	g.GET("/profile/:symbol", h.Profile)
	g.GET("/history/:symbol", h.History)
	g.GET("/indicators/:symbol", h.Indicators)
	g.GET("/financials/:symbol", h.Financials)
	g.GET("/trending", h.Trending)
	g.GET("/list", h.List)
}

func (h *StocksHandler) Quote(c echo.Context) error {
	symbol := c.Param("symbol")
	record, err := h.stocks.GetQuote(c.Request().Context(), symbol)
	if err != nil {
		return h.stockError(c, "quote", symbol, err)
	}
	return xhttp.SuccessResponse(c, record)
}

func (h *StocksHandler) Profile(c echo.Context) error {
	symbol := c.Param("symbol")
	profile, err := h.stocks.GetProfile(c.Request().Context(), symbol)
	if err != nil {
		return h.stockError(c, "profile", symbol, err)
	}
	return xhttp.SuccessResponse(c, profile)
}

func (h *StocksHandler) History(c echo.Context) error {
	symbol := c.Param("symbol")
	period := c.QueryParam("period")
	res, err := h.stocks.GetHistory(c.Request().Context(), symbol, period)
	if err != nil {
		return h.stockError(c, "history", symbol, err)
	}
	// Optional RFC3339 or unix-seconds lower bound on the series.
	if from, ok := xhttp.ParseTime(c.QueryParam("from")); ok {
		res.TrimBefore(from)
	}
	res.Tail(xhttp.ParseIntDefault(c.QueryParam("limit"), 0))
	return xhttp.SuccessResponse(c, res)
}

func (h *StocksHandler) Indicators(c echo.Context) error {
	symbol := c.Param("symbol")
	record, err := h.stocks.GetIndicators(c.Request().Context(), symbol)
	if err != nil {
		return h.stockError(c, "indicators", symbol, err)
	}
	return xhttp.SuccessResponse(c, record)
}

func (h *StocksHandler) Financials(c echo.Context) error {
	symbol := c.Param("symbol")
	res, err := h.stocks.GetFinancials(c.Request().Context(), symbol)
	if err != nil {
		return h.stockError(c, "financials", symbol, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *StocksHandler) Trending(c echo.Context) error {
	records, err := h.stocks.GetTrending(c.Request().Context())
	if err != nil {
		h.logger.Error("trending usecase error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, records)
}

func (h *StocksHandler) List(c echo.Context) error {
	req := &models.ListStocksRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.stocks.List(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("list usecase error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *StocksHandler) stockError(c echo.Context, op, symbol string, err error) error {
	return stockLookupError(c, h.logger, op, symbol, err)
}
