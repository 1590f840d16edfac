// backend-go/cmd/api/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sellora/salesboard/backend-go/internal/api"
	"github.com/sellora/salesboard/backend-go/internal/cache"
	"github.com/sellora/salesboard/backend-go/internal/config"
	"github.com/sellora/salesboard/backend-go/internal/mapping"
	"github.com/sellora/salesboard/backend-go/internal/period"
	"github.com/sellora/salesboard/backend-go/internal/service"
	"github.com/sellora/salesboard/backend-go/internal/sheets"
	"github.com/sellora/salesboard/backend-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.LogLevel)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize the sheets source
	source, err := sheets.NewSource(cfg.Sheets)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize sheets source")
	}

	// Initialize dashboard cache; a cache failure degrades to noop rather
	// than blocking the dashboard
	summaryCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Dashboard cache unavailable, continuing without cache")
		summaryCache = cache.NewNoopDashboardCache()
	}

	// Initialize services
	store := mapping.NewStore(nil)
	calculator := period.NewCalculator(cfg.DataEpochTime(), nil)
	dashboardService := service.NewDashboardService(source, store, calculator, summaryCache, cfg.Dashboard)

	// Initialize HTTP server
	router := api.NewRouter(dashboardService, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
