package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"scrapedash/internal/api/routes"
	"scrapedash/internal/cache"
	"scrapedash/internal/config"
	"scrapedash/internal/logging"
	"scrapedash/internal/monitor"
	"scrapedash/internal/scraperapi"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting scrape dashboard server")

	// Scraper API client
	client, err := scraperapi.NewClient(&scraperapi.ClientConfig{
		BaseURL: cfg.ScraperAPI.BaseURL,
		Timeout: cfg.ScraperAPI.Timeout,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create scraper API client", map[string]interface{}{"error": err.Error()})
	}

	// Snapshot cache
	snapshots := cache.New(cfg, logger)
	if snapshots.Enabled() {
		pingCtx, cancel := context.WithTimeout(context.Background(), cfg.Redis.Timeout)
		if err := snapshots.Ping(pingCtx); err != nil {
			logger.Warn("Snapshot cache unreachable, continuing without it", map[string]interface{}{"error": err.Error()})
		}
		cancel()
	}

	// Monitors
	ctx, stopPolling := context.WithCancel(context.Background())
	monitors := routes.Monitors{
		Progress:  monitor.NewProgress(client, cfg, logger),
		Status:    monitor.NewStatus(client, cfg, logger),
		Resources: monitor.NewResources(client, cfg, logger),
	}
	monitors.Progress.Start(ctx)
	monitors.Status.Start(ctx)
	monitors.Resources.Start(ctx)

	logger.Info("Monitors started", map[string]interface{}{
		"progress_interval":  cfg.Polling.ProgressInterval.String(),
		"status_interval":    cfg.Polling.StatusInterval.String(),
		"resources_interval": cfg.Polling.ResourcesInterval.String(),
		"idle_timeout":       cfg.Polling.IdleTimeout.String(),
	})

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	routes.SetupRoutes(e, cfg, client, monitors, snapshots)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		logger.Info("Stopping monitors...")
		monitors.Progress.Stop()
		monitors.Status.Stop()
		monitors.Resources.Stop()
		stopPolling()

		logger.Info("Closing snapshot cache...")
		if err := snapshots.Close(); err != nil {
			logger.Error("Error closing snapshot cache", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Stopping HTTP server...")
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.WithField("address", address).Info("Server starting")

	if err := e.Start(address); err != nil {
		logger.Error("Server stopped", map[string]interface{}{"error": err.Error()})
	}
}
