package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"scrapedash/internal/cache"
	"scrapedash/pkg/models"
)

var startTime = time.Now()

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	requestLogger(c).Debug("Health check requested")

	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	}

	return c.JSON(http.StatusOK, response)
}

// ReadinessHandler handles readiness probe requests
func ReadinessHandler(snapshots *cache.SnapshotCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestLogger(c).Debug("Readiness check requested")

		checks := map[string]string{"api": "ok"}
		status := "ready"
		httpStatus := http.StatusOK

		if snapshots.Enabled() {
			if err := snapshots.Ping(c.Request().Context()); err != nil {
				checks["cache"] = "unreachable"
				// Cache misses fall through to the remote service, so a Redis
				// outage degrades rather than blocks readiness.
			} else {
				checks["cache"] = "ok"
			}
		}

		response := models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   "1.0.0",
			Uptime:    time.Since(startTime),
			Checks:    checks,
		}
		return c.JSON(httpStatus, response)
	}
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	response := models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
	}
	return c.JSON(http.StatusOK, response)
}
