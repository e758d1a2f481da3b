package routes

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"scrapedash/internal/api/handlers"
	"scrapedash/internal/api/middleware"
	"scrapedash/internal/cache"
	"scrapedash/internal/config"
	"scrapedash/internal/monitor"
	"scrapedash/internal/scraperapi"
	"scrapedash/pkg/models"
)

// Monitors bundles the long-lived pollers the routes read from.
type Monitors struct {
	Progress  *monitor.Monitor[models.ProgressResponse]
	Status    *monitor.Monitor[models.StatusResponse]
	Resources *monitor.Monitor[models.ResourceInfo]
}

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, client *scraperapi.Client, monitors Monitors, snapshots *cache.SnapshotCache) {
	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation())
	// Proxy endpoints wait on the remote service's own 60s budget.
	e.Use(middleware.SelectiveTimeoutConfig(cfg.Server.ReadTimeout, cfg.ScraperAPI.Timeout+10*time.Second))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(snapshots))
		health.GET("/live", handlers.LivenessHandler)
	}

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		scrape := v1.Group("/scrape")
		{
			scrape.POST("/batch", handlers.StartBatchHandler(client))
			scrape.POST("/single", handlers.SingleScrapeHandler(client))
			scrape.POST("/stop", handlers.StopBatchHandler(client))
			scrape.GET("/history", handlers.HistoryHandler(client))
			scrape.GET("/batch/:id", handlers.BatchDetailsHandler(client))
		}

		mon := v1.Group("/monitor")
		{
			mon.GET("/progress", handlers.ProgressHandler(monitors.Progress))
			mon.GET("/status", handlers.StatusHandler(monitors.Status))
			mon.GET("/resources", handlers.ResourcesHandler(monitors.Resources))
		}

		jobs := v1.Group("/jobs")
		{
			jobs.GET("", handlers.ListJobsHandler(client, snapshots))
			jobs.GET("/stats", handlers.JobStatsHandler(client, snapshots))
			jobs.GET("/options", handlers.FilterOptionsHandler())
			jobs.GET("/sort-cycle", handlers.SortCycleHandler())
		}
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "Scrape Dashboard",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
