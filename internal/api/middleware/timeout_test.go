package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// timeoutServer routes through the full echo stack so c.Path() carries the
// registered route the selective middleware keys on.
func timeoutServer(defaultTimeout, proxyTimeout, handlerDelay time.Duration) *echo.Echo {
	e := echo.New()
	e.Use(SelectiveTimeoutConfig(defaultTimeout, proxyTimeout))

	slow := func(c echo.Context) error {
		time.Sleep(handlerDelay)
		return c.NoContent(http.StatusOK)
	}
	e.GET("/api/v1/status", slow)
	e.POST("/api/v1/scrape/batch", slow)
	return e
}

func TestSelectiveTimeout_DefaultBudget(t *testing.T) {
	e := timeoutServer(20*time.Millisecond, 500*time.Millisecond, 100*time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSelectiveTimeout_ProxyPathsGetLongerBudget(t *testing.T) {
	e := timeoutServer(20*time.Millisecond, 500*time.Millisecond, 100*time.Millisecond)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scrape/batch", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSelectiveTimeout_FastHandlerPasses(t *testing.T) {
	e := timeoutServer(200*time.Millisecond, 500*time.Millisecond, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
