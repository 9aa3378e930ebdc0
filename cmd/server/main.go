// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/planwise/ibp-backend/internal/api"
	"github.com/planwise/ibp-backend/internal/cache"
	"github.com/planwise/ibp-backend/internal/config"
	"github.com/planwise/ibp-backend/internal/forecast"
	"github.com/planwise/ibp-backend/internal/planning"
	"github.com/planwise/ibp-backend/internal/repository/postgres"
	"github.com/planwise/ibp-backend/internal/service"
	"github.com/planwise/ibp-backend/internal/storage"
	"github.com/planwise/ibp-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.Configure(cfg.Server.Mode, "info")
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	productRepo := postgres.NewProductRepository(db)
	salesRepo := postgres.NewSalesRepository(db)

	// Planning cache is optional; a broken redis configuration should fail
	// loudly at startup rather than degrade silently per request.
	planningCache, err := cache.NewPlanningCache(cfg.Cache)
	if err != nil {
		log.Fatalf("Failed to initialize planning cache: %v", err)
	}

	// Upload archive is optional infrastructure.
	var archiver storage.Archiver = storage.NoopArchiver{}
	if cfg.Storage.Enabled {
		archiver, err = storage.NewMinioArchiver(cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize upload archive: %v", err)
		}
	}

	// The forecast capability registry is populated once at startup; the
	// evaluator only ever sees the models registered here.
	registry := forecast.NewDefaultRegistry(cfg.Planning.SmoothingAlpha)

	calc := planning.NewCalculator(cfg.Planning.SafetyFactor)
	scenarios := planning.NewScenarioGenerator(calc, planning.Scenarios(cfg.Planning.ScenarioSpread))

	services := &api.Services{
		Products: service.NewProductService(productRepo, planningCache),
		History:  service.NewHistoryService(salesRepo, planningCache, archiver),
		Forecast: service.NewForecastService(salesRepo, registry),
		Planning: service.NewPlanningService(productRepo, salesRepo, calc, scenarios, planningCache),
	}

	router := api.NewRouter(services, cfg)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().
			Str("port", cfg.Server.Port).
			Str("role", cfg.Planning.Role).
			Strs("models", registry.Available()).
			Msg("Starting server")
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
