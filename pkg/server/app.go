package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"StockAI/pkg/config"
	xhttp "StockAI/pkg/http"
	applogger "StockAI/pkg/logger"
	"StockAI/pkg/queue"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handlers   []xhttp.Handler
	httpServer *xhttp.Server
	logQueue   *queue.RedisQueue
	redis      *redis.Client
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, logger *applogger.Logger, handlers ...xhttp.Handler) *App {
	return &App{
		cfg:      cfg,
		logger:   logger,
		handlers: handlers,
	}
}

// SetLogQueue wires a Redis-backed publisher as the sink for aggregated
// error logs. Optional; without it logs only go to the configured output.
func (a *App) SetLogQueue(q *queue.RedisQueue) { a.logQueue = q }

// SetRedisClient hands the shared Redis connection to the app for closing
// on shutdown.
func (a *App) SetRedisClient(c *redis.Client) { a.redis = c }

// routeSet registers every handler plus the health endpoint on one Echo.
type routeSet []xhttp.Handler

func (rs routeSet) RegisterRoutes(e *echo.Echo) {
	for _, h := range rs {
		if h != nil {
			h.RegisterRoutes(e)
		}
	}
	alive := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
	e.GET("/", alive)
	e.GET("/health", alive)
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if a.cfg.Log.Collect && a.logQueue != nil {
		a.logger.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          a.cfg.Log.Topic,
			Publisher:      a.logQueue,
		})
		a.logger.Info("log collector attached", applogger.String("topic", a.cfg.Log.Topic))
	}

	a.httpServer = xhttp.NewServer(routeSet(a.handlers),
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("backend", a.cfg.Backend.Type))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	// Final flush of aggregated logs, then stop the queue behind it.
	a.logger.RemoveCollector()
	if a.logQueue != nil {
		if err := a.logQueue.Stop(shutdownCtx); err != nil {
			a.logger.Warn("log queue stop error", applogger.Error(err))
		}
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("redis close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
