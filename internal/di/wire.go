//go:build wireinject
// +build wireinject

package di

import (
	"StockAI/pkg/config"
	"StockAI/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Infrastructure
		ProvideLogger,
		ProvideMetrics,
		ProvideMarketData,
		ProvideCacheService,
		ProvideBytesCache,

		// AI
		ProvideGenerator,
		ProvideAnalyst,

		// Use cases
		ProvideStocksUseCase,
		ProvideScreenUseCase,
		ProvideChatUseCase,
		ProvideAnalysisUseCase,

		// HTTP handlers
		ProvideStocksHandler,
		ProvideScreenerHandler,
		ProvideChatHandler,
		ProvideAnalysisHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
