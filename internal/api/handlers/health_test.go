package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrapedash/pkg/models"
)

func TestHealthHandler(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, HealthHandler(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "ok", resp.Checks["api"])
}

func TestReadinessHandler_CacheDisabled(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, ReadinessHandler(disabledCache())(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ready", resp.Status)
	_, hasCacheCheck := resp.Checks["cache"]
	assert.False(t, hasCacheCheck, "disabled cache must not appear in readiness checks")
}

func TestLivenessHandler(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, LivenessHandler(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
}
