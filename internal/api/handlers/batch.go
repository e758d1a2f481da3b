package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"scrapedash/internal/scraperapi"
	"scrapedash/pkg/models"
	"scrapedash/pkg/utils"
)

var validate = validator.New()

// startBatchForm is what the dashboard's batch form submits: the URL list as
// one newline-separated field, plus optional worker/record/priority bounds.
type startBatchForm struct {
	URLs              string `json:"urls" validate:"required"`
	MaxWorkers        *int   `json:"max_workers" validate:"omitempty,min=1,max=10"`
	MaxRecordsPerFile *int   `json:"max_records_per_file" validate:"omitempty,min=1,max=500"`
	Priority          *int   `json:"priority" validate:"omitempty,min=1,max=5"`
}

// StartBatchHandler validates the batch form locally and forwards it to the
// scraping service. Validation failures never reach the network.
func StartBatchHandler(client *scraperapi.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestID(c)
		logger := requestLogger(c)

		var form startBatchForm
		if err := c.Bind(&form); err != nil {
			logger.Error("Failed to bind batch request", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if err := validate.Struct(&form); err != nil {
			logger.Error("Batch request validation failed", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		urls, err := utils.TransformURLs(form.URLs)
		if err != nil {
			var ce *utils.CustomError
			message := "Invalid URL list"
			if errors.As(err, &ce) {
				message = ce.Error()
			}
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   message,
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		req := &models.BatchScrapeRequest{
			URLs:              urls,
			MaxWorkers:        form.MaxWorkers,
			MaxRecordsPerFile: form.MaxRecordsPerFile,
			Priority:          form.Priority,
		}

		logger.Info("Starting scrape batch", map[string]interface{}{"url_count": len(urls)})

		resp, err := client.StartBatch(c.Request().Context(), req)
		if err != nil {
			logger.Error("Batch start request failed", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error:     "upstream_failed",
				Message:   utils.NewUpstreamError(err.Error()).Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		// success:false is the remote service's answer, not an error here;
		// the dashboard shows its message as a failure notification.
		if !resp.Success {
			logger.Warn("Scraping service rejected batch", map[string]interface{}{"message": resp.Message})
		} else {
			logger.Info("Batch started", map[string]interface{}{"batch_id": resp.BatchID})
		}

		return c.JSON(http.StatusOK, resp)
	}
}

// StopBatchHandler forwards a stop request to the scraping service.
func StopBatchHandler(client *scraperapi.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestID(c)
		logger := requestLogger(c)

		var req models.StopRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		resp, err := client.StopBatch(c.Request().Context(), &req)
		if err != nil {
			logger.Error("Batch stop request failed", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error:     "upstream_failed",
				Message:   utils.NewUpstreamError(err.Error()).Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		logger.Info("Batch stop requested", map[string]interface{}{
			"batch_id":      req.BatchID,
			"force":         req.Force,
			"stopped_tasks": resp.StoppedTasks,
		})
		return c.JSON(http.StatusOK, resp)
	}
}

// SingleScrapeHandler validates one URL and forwards it for a synchronous
// scrape.
func SingleScrapeHandler(client *scraperapi.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestID(c)
		logger := requestLogger(c)

		var req models.SingleScrapeRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if !utils.IsValidURL(req.URL) {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   "invalid URL: " + req.URL,
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		resp, err := client.ScrapeSingle(c.Request().Context(), utils.NormalizeURL(req.URL))
		if err != nil {
			logger.Error("Single scrape request failed", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error:     "upstream_failed",
				Message:   utils.NewUpstreamError(err.Error()).Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, resp)
	}
}

// HistoryHandler returns recently finished batches.
func HistoryHandler(client *scraperapi.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestID(c)
		logger := requestLogger(c)

		limit := 10
		if v := c.QueryParam("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}

		resp, err := client.History(c.Request().Context(), limit)
		if err != nil {
			logger.Error("History request failed", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error:     "upstream_failed",
				Message:   utils.NewUpstreamError(err.Error()).Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, resp)
	}
}

// BatchDetailsHandler returns one batch with its per-task breakdown.
func BatchDetailsHandler(client *scraperapi.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestID(c)
		logger := requestLogger(c)

		batchID := c.Param("id")
		if batchID == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   "batch id is required",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		resp, err := client.BatchDetails(c.Request().Context(), batchID)
		if err != nil {
			logger.Error("Batch details request failed", map[string]interface{}{
				"batch_id": batchID,
				"error":    err.Error(),
			})
			return c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error:     "upstream_failed",
				Message:   utils.NewUpstreamError(err.Error()).Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, resp)
	}
}
