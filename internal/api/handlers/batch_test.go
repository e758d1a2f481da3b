package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrapedash/pkg/models"
)

func postJSON(t *testing.T, h echo.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestStartBatchHandler_ForwardsNormalizedURLs(t *testing.T) {
	var got models.BatchScrapeRequest
	client := remoteStub(t, func(w http.ResponseWriter, r *http.Request) {
		payload, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(payload, &got))
		w.Write([]byte(`{"success":true,"message":"started","batch_id":"b-1"}`))
	})

	rec := postJSON(t, StartBatchHandler(client), "/api/v1/scrape/batch",
		`{"urls":"example.com/jobs\nhttps://other.io/careers\n\n","max_workers":4}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"https://example.com/jobs", "https://other.io/careers"}, got.URLs)
	require.NotNil(t, got.MaxWorkers)
	assert.Equal(t, 4, *got.MaxWorkers)
}

func TestStartBatchHandler_ValidationFailures(t *testing.T) {
	client := remoteStub(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid request must never reach the remote service")
	})
	h := StartBatchHandler(client)

	tests := []struct {
		name string
		body string
	}{
		{"missing urls", `{}`},
		{"blank urls", `{"urls":"\n  \n"}`},
		{"invalid url", `{"urls":"ht tp://bad host"}`},
		{"workers out of range", `{"urls":"example.com","max_workers":50}`},
		{"priority out of range", `{"urls":"example.com","priority":9}`},
		{"malformed json", `{"urls":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h, "/api/v1/scrape/batch", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var errResp models.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
			assert.NotEmpty(t, errResp.Error)
			assert.NotEmpty(t, errResp.RequestID)
		})
	}
}

func TestStartBatchHandler_RemoteRefusalPassedThrough(t *testing.T) {
	client := remoteStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"another batch is already running"}`))
	})

	rec := postJSON(t, StartBatchHandler(client), "/api/v1/scrape/batch", `{"urls":"example.com"}`)
	assert.Equal(t, http.StatusOK, rec.Code, "a business refusal is not an HTTP error")

	var resp models.BatchScrapeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "another batch is already running", resp.Message)
}

func TestStartBatchHandler_UpstreamDown(t *testing.T) {
	client := remoteStub(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	rec := postJSON(t, StartBatchHandler(client), "/api/v1/scrape/batch", `{"urls":"example.com"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var errResp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "upstream_failed", errResp.Error)
}

func TestStopBatchHandler(t *testing.T) {
	client := remoteStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/scrape/stop", r.URL.Path)
		w.Write([]byte(`{"success":true,"message":"stopped","stopped_tasks":3}`))
	})

	rec := postJSON(t, StopBatchHandler(client), "/api/v1/scrape/stop", `{}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.StopResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.StoppedTasks)
}

func TestHistoryHandler(t *testing.T) {
	client := remoteStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/scrape/history", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"), "default limit")
		w.Write([]byte(`{"batches":[{"batch_id":"b-1","status":"completed","total_urls":5}]}`))
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/scrape/history", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, HistoryHandler(client)(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.BatchHistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Batches, 1)
	assert.Equal(t, "b-1", resp.Batches[0].BatchID)
}

func TestSingleScrapeHandler_RejectsInvalidURL(t *testing.T) {
	client := remoteStub(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid request must never reach the remote service")
	})

	rec := postJSON(t, SingleScrapeHandler(client), "/api/v1/scrape/single", `{"url":"ht tp://bad host"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
