package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"agri-platform/internal/config"
	"agri-platform/internal/handlers"
	"agri-platform/internal/repository"
	"agri-platform/internal/server"
	"agri-platform/internal/services"
	"agri-platform/pkg/logging"
	"agri-platform/pkg/metrics"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Validate already rejected unknown levels
	logLevel, _ := logging.ParseLevel(cfg.Logging.Level)
	logger := logging.NewStructuredLogger("agri-api", version, logLevel)

	ctx := context.Background()
	logger.Info(ctx, "[STARTUP] Starting agri platform API server", logging.Fields{
		"version":         version,
		"server_host":     cfg.Server.Host,
		"server_port":     cfg.Server.Port,
		"log_level":       logLevel.String(),
		"allowed_origins": cfg.CORS.AllowedOrigins,
	})

	metricsCollector := metrics.NewCollector("agri_platform", prometheus.DefaultRegisterer)

	catalogRepo := repository.NewStaticRepository(logger)

	cropService := services.NewCropService(catalogRepo, logger, metricsCollector)
	weatherService := services.NewWeatherService(catalogRepo, logger)
	advisoryService := services.NewAdvisoryService(catalogRepo, logger)

	// Publish the catalog size before the first request arrives
	crops, err := cropService.ListCrops(ctx)
	if err != nil {
		logger.Fatal(ctx, "[STARTUP_ERROR] Failed to load crop catalog", logging.Fields{}, err)
	}
	logger.Info(ctx, "[CATALOG_READY] Crop catalog loaded", logging.Fields{
		"crops": crops.Names(),
	})

	agriHandler := handlers.NewAgriHandler(cropService, weatherService, advisoryService, logger, metricsCollector)

	srv := &http.Server{
		Addr: cfg.Server.Addr(),
		Handler: server.NewRouter(server.Deps{
			Handler:        agriHandler,
			Logger:         logger,
			Metrics:        metricsCollector,
			Gatherer:       prometheus.DefaultGatherer,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info(ctx, "[SERVER_START] HTTP server listening", logging.Fields{
			"address": srv.Addr,
		})

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(ctx, "[SERVER_ERROR] Server failed", logging.Fields{}, err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info(ctx, "[SHUTDOWN] Shutting down server...", logging.Fields{
		"signal": sig.String(),
	})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "[SHUTDOWN_ERROR] Server forced to shutdown", logging.Fields{}, err)
	}

	logger.Info(ctx, "[SHUTDOWN_COMPLETE] Server stopped", logging.Fields{})
}
