package api

import (
	"github.com/labstack/echo/v4"

	"StockAI/internal/domain/models"
	"StockAI/internal/usecase"
	xhttp "StockAI/pkg/http"
	applogger "StockAI/pkg/logger"
)

// ChatHandler serves the conversational endpoints.
type ChatHandler struct {
	logger *applogger.Logger
	chat   *usecase.ChatUseCase
}

func NewChatHandler(logger *applogger.Logger, chat *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{logger: logger, chat: chat}
}

func (h *ChatHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/chat")
	g.POST("/query", h.Query)
	g.POST("/explain", h.Explain)
	g.POST("/summarize", h.Summarize)
}

func (h *ChatHandler) Query(c echo.Context) error {
	req := &models.ChatRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.chat.Chat(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("chat usecase error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ChatHandler) Explain(c echo.Context) error {
	req := &models.ExplainMetricRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.chat.ExplainMetric(c.Request().Context(), *req)
	if err != nil {
		return stockLookupError(c, h.logger, "explain", req.StockSymbol, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ChatHandler) Summarize(c echo.Context) error {
	req := &models.SummarizeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.chat.Summarize(c.Request().Context(), *req)
	if err != nil {
		return stockLookupError(c, h.logger, "summarize", req.StockSymbol, err)
	}
	return xhttp.SuccessResponse(c, res)
}
