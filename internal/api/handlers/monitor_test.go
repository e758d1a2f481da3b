package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrapedash/internal/config"
	"scrapedash/internal/logging"
	"scrapedash/internal/monitor"
)

func startedProgressMonitor(t *testing.T, hits *atomic.Int64, payload string) (*echo.Echo, echo.HandlerFunc) {
	t.Helper()

	remote := remoteStub(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(payload))
	})

	cfg := &config.Config{}
	cfg.Polling.ProgressInterval = time.Hour
	cfg.Polling.StatusInterval = time.Hour
	cfg.Polling.ResourcesInterval = time.Hour

	m := monitor.NewProgress(remote, cfg, logging.NewMultiLogger())
	ctx, cancel := context.WithCancel(context.Background())
	m.Start(ctx)
	t.Cleanup(func() {
		m.Stop()
		cancel()
	})

	// Wait for the immediate first fetch to settle.
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && m.Snapshot().Data == nil {
		time.Sleep(time.Millisecond)
	}
	require.NotNil(t, m.Snapshot().Data)

	return echo.New(), ProgressHandler(m)
}

func TestProgressHandler_ServesSnapshot(t *testing.T) {
	var hits atomic.Int64
	e, h := startedProgressMonitor(t, &hits,
		`{"is_running":true,"batch_info":{"batch_id":"b-1","status":"running","total_urls":4,"completed_urls":1},"tasks":[]}`)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/monitor/progress", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["is_loading"])
	assert.Equal(t, true, body["is_active"])
	assert.Equal(t, true, body["should_poll"])
	require.NotNil(t, body["data"])
}

func TestProgressHandler_IdleBatch(t *testing.T) {
	var hits atomic.Int64
	e, h := startedProgressMonitor(t, &hits, `{"is_running":false,"tasks":[]}`)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/monitor/progress", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["is_active"])
	assert.Equal(t, false, body["should_poll"])
}

func TestProgressHandler_RefreshForcesFetch(t *testing.T) {
	var hits atomic.Int64
	e, h := startedProgressMonitor(t, &hits, `{"is_running":false,"tasks":[]}`)

	before := hits.Load()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/monitor/progress?refresh=true", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	assert.Equal(t, before+1, hits.Load(), "refresh=true must hit the remote service")

	// Without the flag the snapshot is served from memory.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/monitor/progress", nil)
	rec = httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	assert.Equal(t, before+1, hits.Load())
}
