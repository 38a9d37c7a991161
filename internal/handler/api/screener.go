package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"StockAI/internal/domain/models"
	icache "StockAI/internal/service/cache"
	"StockAI/internal/service/ratelimit"
	"StockAI/internal/usecase"
	pkgcache "StockAI/pkg/cache"
	xhttp "StockAI/pkg/http"
	applogger "StockAI/pkg/logger"
)

const screenCacheTTL = 60 * time.Second

// ScreenerHandler serves the filter-based and natural-language screening
// endpoints. Screens are the most expensive operation in the system, so the
// handler rate limits per remote and caches rendered responses.
type ScreenerHandler struct {
	logger   *applogger.Logger
	screen   *usecase.ScreenUseCase
	cache    icache.BytesCache
	cacheTTL time.Duration
	rl       *ratelimit.Limiter
}

func NewScreenerHandler(logger *applogger.Logger, screen *usecase.ScreenUseCase) *ScreenerHandler {
	return &ScreenerHandler{logger: logger, screen: screen, cacheTTL: screenCacheTTL, rl: ratelimit.New()}
}

// SetCache injects a response cache.
func (h *ScreenerHandler) SetCache(c icache.BytesCache) { h.cache = c }

// SetCacheTTL overrides how long rendered screen responses live.
func (h *ScreenerHandler) SetCacheTTL(d time.Duration) {
	if d > 0 {
		h.cacheTTL = d
	}
}

func (h *ScreenerHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/screener")
	g.POST("/query", h.Query)
	g.GET("/presets", h.Presets)
	g.POST("/presets/:name", h.RunPreset)
	g.GET("/filters", h.Filters)
	g.POST("/natural-language", h.NaturalLanguage)
}

func (h *ScreenerHandler) Query(c echo.Context) error {
	req := &models.ScreenRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":screen", 5, 1) {
		return xhttp.AppErrorResponse(c, rateLimitedError())
	}

	key, cacheable := h.screenCacheKey("screen", req)
	if cacheable {
		if b, ok := h.cachedResponse(key); ok {
			return c.JSONBlob(http.StatusOK, b)
		}
	}

	res, err := h.screen.Screen(c.Request().Context(), req.Filters, req.Limit)
	if err != nil {
		h.logger.Error("screen usecase error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if cacheable {
		return h.respondAndCache(c, key, res)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ScreenerHandler) Presets(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.screen.Presets())
}

func (h *ScreenerHandler) RunPreset(c echo.Context) error {
	name := c.Param("name")
	if !h.rl.Allow(c.RealIP()+":screen", 5, 1) {
		return xhttp.AppErrorResponse(c, rateLimitedError())
	}

	res, err := h.screen.ScreenPreset(c.Request().Context(), name, 0)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("preset %q not found", name).WithError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ScreenerHandler) Filters(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.screen.FilterSchema())
}

func (h *ScreenerHandler) NaturalLanguage(c echo.Context) error {
	req := &models.NaturalLanguageScreenRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	// interpretation burns LLM quota on top of provider quota
	if !h.rl.Allow(c.RealIP()+":nl", 3, 0.5) {
		return xhttp.AppErrorResponse(c, rateLimitedError())
	}

	res, err := h.screen.ScreenNaturalLanguage(c.Request().Context(), req.Query, req.Limit)
	if err != nil {
		h.logger.Error("nl screen usecase error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// screenCacheKey derives a stable key from the request payload.
func (h *ScreenerHandler) screenCacheKey(prefix string, req interface{}) (string, bool) {
	if h.cache == nil {
		return "", false
	}
	b, err := json.Marshal(req)
	if err != nil {
		return "", false
	}
	return pkgcache.GenerateKey(prefix, pkgcache.HashKey(string(b))), true
}

func (h *ScreenerHandler) cachedResponse(key string) ([]byte, bool) {
	b, ok, err := h.cache.GetBytes(key)
	if err != nil {
		h.logger.Warn("screen cache get error", applogger.Error(err))
		return nil, false
	}
	if ok {
		h.logger.Debug("screen cache hit", applogger.String("key", key))
	}
	return b, ok
}

// respondAndCache renders the standard envelope once, stores the bytes, and
// writes them out.
func (h *ScreenerHandler) respondAndCache(c echo.Context, key string, data interface{}) error {
	body, err := json.Marshal(xhttp.APIResponse{
		Status:  http.StatusOK,
		Message: http.StatusText(http.StatusOK),
		Data:    data,
	})
	if err != nil {
		return xhttp.SuccessResponse(c, data)
	}
	if err := h.cache.SetBytes(key, body, h.cacheTTL); err != nil {
		h.logger.Warn("screen cache set error", applogger.Error(err))
	}
	return c.JSONBlob(http.StatusOK, body)
}

func rateLimitedError() *xhttp.AppError {
	return xhttp.NewAppError("ERR_RATE_LIMITED", "", "too many requests, slow down", http.StatusTooManyRequests)
}
