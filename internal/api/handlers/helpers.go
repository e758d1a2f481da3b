package handlers

import (
	"github.com/labstack/echo/v4"

	"scrapedash/internal/logging"
	"scrapedash/pkg/utils"
)

// requestID returns the ID assigned by the validation middleware, generating
// one for routes mounted outside it.
func requestID(c echo.Context) string {
	if id, ok := c.Get("request_id").(string); ok && id != "" {
		return id
	}
	return utils.GenerateRequestID()
}

func requestLogger(c echo.Context) logging.Logger {
	return logging.LogWithRequestID(requestID(c))
}
