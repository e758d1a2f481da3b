package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// TimeoutConfig returns timeout middleware configuration
func TimeoutConfig(timeout time.Duration) echo.MiddlewareFunc {
	return middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: timeout,
	})
}

// SelectiveTimeoutConfig applies the default timeout everywhere except the
// proxy endpoints that wait on the remote scraping service, which get the
// longer one.
func SelectiveTimeoutConfig(defaultTimeout, proxyTimeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			timeout := defaultTimeout
			if strings.HasPrefix(c.Path(), "/api/v1/scrape") {
				timeout = proxyTimeout
			}

			return TimeoutConfig(timeout)(next)(c)
		}
	}
}
