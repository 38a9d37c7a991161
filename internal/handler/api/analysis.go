package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	"StockAI/internal/domain/models"
	domrepo "StockAI/internal/domain/repository"
	"StockAI/internal/usecase"
	xhttp "StockAI/pkg/http"
	applogger "StockAI/pkg/logger"
)

// AnalysisHandler serves the AI analysis endpoints.
type AnalysisHandler struct {
	logger   *applogger.Logger
	analysis *usecase.AnalysisUseCase
}

func NewAnalysisHandler(logger *applogger.Logger, analysis *usecase.AnalysisUseCase) *AnalysisHandler {
	return &AnalysisHandler{logger: logger, analysis: analysis}
}

func (h *AnalysisHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/analysis")
	g.POST("/full", h.Full)
	g.POST("/sentiment", h.Sentiment)
	g.POST("/fundamentals", h.Fundamentals)
	g.POST("/generate-report", h.GenerateReport)
}

func (h *AnalysisHandler) Full(c echo.Context) error {
	req := &models.AnalysisRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analysis.Analyze(c.Request().Context(), req.StockSymbol)
	if err != nil {
		return stockLookupError(c, h.logger, "analysis", req.StockSymbol, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisHandler) Sentiment(c echo.Context) error {
	req := &models.AnalysisRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analysis.Sentiment(c.Request().Context(), req.StockSymbol)
	if err != nil {
		return stockLookupError(c, h.logger, "sentiment", req.StockSymbol, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisHandler) Fundamentals(c echo.Context) error {
	req := &models.AnalysisRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analysis.Fundamentals(c.Request().Context(), req.StockSymbol)
	if err != nil {
		return stockLookupError(c, h.logger, "fundamentals", req.StockSymbol, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisHandler) GenerateReport(c echo.Context) error {
	req := &models.AnalysisRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analysis.GenerateReport(c.Request().Context(), req.StockSymbol)
	if err != nil {
		return stockLookupError(c, h.logger, "report", req.StockSymbol, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// stockLookupError maps provider not-found to a 404 and everything else to
// the generic 500, logging the latter.
func stockLookupError(c echo.Context, logger *applogger.Logger, op, symbol string, err error) error {
	if errors.Is(err, domrepo.ErrNotFound) {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("symbol %q not found", symbol).WithError(err))
	}
	logger.Error(op+" usecase error",
		applogger.String("symbol", symbol), applogger.Error(err))
	return xhttp.AppErrorResponse(c, err)
}
