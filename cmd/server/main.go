// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vacayzen/product-recommendation/internal/api"
	"github.com/vacayzen/product-recommendation/internal/cache"
	"github.com/vacayzen/product-recommendation/internal/config"
	"github.com/vacayzen/product-recommendation/internal/ingest"
	"github.com/vacayzen/product-recommendation/internal/pipeline/recommendation"
	"github.com/vacayzen/product-recommendation/internal/service"
	"github.com/vacayzen/product-recommendation/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.Configure(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Source backends (s3, drive, sql) when configured
	resolver, cleanup, err := ingest.NewResolver(context.Background(), cfg, false)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize input sources")
	}
	defer cleanup()

	analysisCache, err := cache.NewAnalysisCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Analysis cache unavailable, continuing without it")
		analysisCache = cache.NewNoopAnalysisCache()
	}

	// Initialize services
	pipeline := recommendation.NewPipeline(recommendation.Config{CancelledStage: cfg.Ingest.CancelledStage})
	recommendationService := service.NewRecommendationService(ingest.NewLoader(), pipeline, analysisCache)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		RecommendationService: recommendationService,
		Resolver:              resolver,
		MaxUploadBytes:        cfg.Ingest.MaxUploadMB << 20,
	}, cfg.Server.AllowedOrigins)

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

	// The server has 5 seconds to finish in-flight analyses
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
