package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrapedash/internal/cache"
	"scrapedash/internal/config"
	"scrapedash/internal/logging"
	"scrapedash/internal/scraperapi"
)

func disabledCache() *cache.SnapshotCache {
	return cache.New(&config.Config{}, logging.NewMultiLogger())
}

func remoteStub(t *testing.T, handler http.HandlerFunc) *scraperapi.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := scraperapi.NewClient(&scraperapi.ClientConfig{BaseURL: server.URL}, logging.NewMultiLogger())
	require.NoError(t, err)
	return client
}

const jobsPage = `{"success":true,"total_count":3,"page":1,"page_size":20,"total_pages":1,"jobs":[
	{"title":"Backend Engineer","url":"https://a.test/1","job_type":"Full-time","remote_option":"Remote","salary_min":90000,"salary_max":120000,"posted_date":"2025-06-15"},
	{"title":"Data Analyst","url":"https://a.test/2","job_type":"Part-time","remote_option":"Hybrid","salary_min":40000,"posted_date":"2025-01-10"},
	{"title":"Intern","url":"https://a.test/3","job_type":"Internship","remote_option":"On-site"}
]}`

func performJSON(t *testing.T, h echo.HandlerFunc, target string) (*httptest.ResponseRecorder, jobsPageResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))

	var body jobsPageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestListJobsHandler_NoFilters(t *testing.T) {
	client := remoteStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(jobsPage))
	})
	h := ListJobsHandler(client, disabledCache())

	rec, body := performJSON(t, h, "/api/v1/jobs")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	assert.Equal(t, 3, body.TotalCount)
	assert.Len(t, body.Jobs, 3)
	assert.Equal(t, 3, body.FilteredCount)
	assert.Equal(t, 0, body.ActiveFilters)
}

func TestListJobsHandler_FiltersApplied(t *testing.T) {
	client := remoteStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(jobsPage))
	})
	h := ListJobsHandler(client, disabledCache())

	_, body := performJSON(t, h, "/api/v1/jobs?job_type=Full-time&salary_min=100000")
	require.Len(t, body.Jobs, 1)
	assert.Equal(t, "Backend Engineer", body.Jobs[0].Title)
	assert.Equal(t, 1, body.FilteredCount)
	assert.Equal(t, 2, body.ActiveFilters)
	// The remote total is preserved alongside the filtered count.
	assert.Equal(t, 3, body.TotalCount)
}

func TestListJobsHandler_SortApplied(t *testing.T) {
	client := remoteStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(jobsPage))
	})
	h := ListJobsHandler(client, disabledCache())

	_, body := performJSON(t, h, "/api/v1/jobs?sort=posted_date&direction=desc")
	require.Len(t, body.Jobs, 3)
	assert.Equal(t, "Backend Engineer", body.Jobs[0].Title)
	assert.Equal(t, "Data Analyst", body.Jobs[1].Title)
	assert.Equal(t, "Intern", body.Jobs[2].Title, "jobs without a date sort last even descending")
}

func TestListJobsHandler_InvalidSortIgnored(t *testing.T) {
	client := remoteStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(jobsPage))
	})
	h := ListJobsHandler(client, disabledCache())

	rec, body := performJSON(t, h, "/api/v1/jobs?sort=bogus")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, string(body.Sort.Column))
}

func TestListJobsHandler_DisplayFields(t *testing.T) {
	client := remoteStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(jobsPage))
	})
	h := ListJobsHandler(client, disabledCache())

	_, body := performJSON(t, h, "/api/v1/jobs?sort=salary&direction=desc")
	require.Len(t, body.Jobs, 3)
	assert.Equal(t, "$90k - $120k", body.Jobs[0].Display.Salary)
	assert.Equal(t, "$40k+", body.Jobs[1].Display.Salary)
	assert.Empty(t, body.Jobs[2].Display.Salary, "no salary data renders as empty, not $0")
	assert.Equal(t, "Recently", body.Jobs[2].Display.Posted, "missing dates fall back to Recently")
}

func TestListJobsHandler_RemoteRefusal(t *testing.T) {
	client := remoteStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"listing disabled during reindex"}`))
	})
	h := ListJobsHandler(client, disabledCache())

	// The remote refusing the listing is its answer to the user, not a broken
	// upstream link: the handler passes it through instead of returning 502.
	rec, body := performJSON(t, h, "/api/v1/jobs")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, body.Success)
	assert.Equal(t, "listing disabled during reindex", body.Message)
	assert.Empty(t, body.Jobs)
}

func TestListJobsHandler_UpstreamDown(t *testing.T) {
	client := remoteStub(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	})
	h := ListJobsHandler(client, disabledCache())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestSortCycleHandler(t *testing.T) {
	h := SortCycleHandler()

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"new column starts ascending", "/sort-cycle?column=title", `{"column":"title","direction":"asc"}`},
		{"ascending flips to descending", "/sort-cycle?column=title&current_column=title&current_direction=asc", `{"column":"title","direction":"desc"}`},
		{"descending clears the sort", "/sort-cycle?column=title&current_column=title&current_direction=desc", `{"column":"","direction":""}`},
		{"different column resets to ascending", "/sort-cycle?column=salary&current_column=title&current_direction=desc", `{"column":"salary","direction":"asc"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()
			require.NoError(t, h(e.NewContext(req, rec)))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}
}

func TestSortCycleHandler_UnknownColumn(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/sort-cycle?column=bogus", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, SortCycleHandler()(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFilterOptionsHandler(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/options", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, FilterOptionsHandler()(e.NewContext(req, rec)))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	jobTypes, ok := body["job_types"].([]interface{})
	require.True(t, ok)
	assert.Equal(t, "All", jobTypes[0], "the inactive sentinel leads every vocabulary")
	assert.Contains(t, body, "remote_options")
	assert.Contains(t, body, "contract_types")
	assert.Contains(t, body, "sort_columns")
}
