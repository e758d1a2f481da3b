package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"scrapedash/internal/cache"
	"scrapedash/internal/scraperapi"
	"scrapedash/pkg/jobs"
	"scrapedash/pkg/models"
	"scrapedash/pkg/utils"
)

// jobsPageResponse is one remote page with the dashboard's client-side
// filters and sort applied on top.
type jobsPageResponse struct {
	Success       bool            `json:"success"`
	Message       string          `json:"message,omitempty"`
	TotalCount    int             `json:"total_count"`
	Jobs          []jobView       `json:"jobs"`
	Page          int             `json:"page"`
	PageSize      int             `json:"page_size"`
	TotalPages    int             `json:"total_pages"`
	FilteredCount int             `json:"filtered_count"`
	ActiveFilters int             `json:"active_filters"`
	Sort          jobs.SortConfig `json:"sort"`
}

// jobDisplay carries the render-ready strings so the UI never re-derives
// them from the raw record.
type jobDisplay struct {
	Company  string `json:"company"`
	Location string `json:"location"`
	Salary   string `json:"salary"`
	Posted   string `json:"posted"`
	ApplyVia string `json:"apply_via"`
}

// jobView is the raw record plus its display block.
type jobView struct {
	models.Job
	Display jobDisplay `json:"display"`
}

func viewOf(j models.Job) jobView {
	sal := jobs.Salary(j)
	var min, max float64
	if sal.Min != nil {
		min = *sal.Min
	}
	if sal.Max != nil {
		max = *sal.Max
	}
	return jobView{
		Job: j,
		Display: jobDisplay{
			Company:  jobs.CompanyName(j),
			Location: jobs.LocationString(j),
			Salary:   utils.FormatSalary(min, max, sal.Currency, sal.Period),
			Posted:   utils.FormatRelativeTime(jobs.PostedDate(j)),
			ApplyVia: jobs.ApplicationMethod(j),
		},
	}
}

func filtersFromQuery(c echo.Context) jobs.Filters {
	f := jobs.Filters{
		JobType:      c.QueryParam("job_type"),
		RemoteOption: c.QueryParam("remote_option"),
		ContractType: c.QueryParam("contract_type"),
	}

	if v := c.QueryParam("salary_min"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			f.SalaryMin = &n
		}
	}
	if v := c.QueryParam("salary_max"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			f.SalaryMax = &n
		}
	}
	if v := c.QueryParam("ats_detected"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.ATSDetected = &b
		}
	}
	if v := c.QueryParam("easy_apply"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.EasyApply = &b
		}
	}
	return f
}

func sortFromQuery(c echo.Context) jobs.SortConfig {
	col, ok := jobs.ParseColumn(c.QueryParam("sort"))
	if !ok {
		return jobs.SortConfig{}
	}

	dir := jobs.Direction(c.QueryParam("direction"))
	if dir != jobs.Ascending && dir != jobs.Descending {
		dir = jobs.Ascending
	}
	return jobs.SortConfig{Column: col, Direction: dir}
}

// ListJobsHandler proxies the remote jobs listing and applies filtering and
// sorting over the fetched page. The raw remote page is cached for one poll
// cycle so several dashboard clients paging the same listing share a fetch.
func ListJobsHandler(client *scraperapi.Client, snapshots *cache.SnapshotCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestID(c)
		logger := requestLogger(c)
		ctx := c.Request().Context()

		var q models.JobsQuery
		if err := c.Bind(&q); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid query parameters",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		key := cache.JobsKey(q.Page, q.PageSize, q.Location, q.Company)

		var page models.JobsListResponse
		if !snapshots.Get(ctx, key, &page) {
			resp, err := client.ListJobs(ctx, q)
			if err != nil {
				// A success:false answer is the remote service refusing the
				// listing, not a transport failure: hand its message to the
				// user instead of blaming the upstream link.
				var remoteErr *scraperapi.RemoteError
				if errors.As(err, &remoteErr) {
					logger.Warn("Jobs listing refused by remote", map[string]interface{}{"message": remoteErr.Message})
					return c.JSON(http.StatusOK, jobsPageResponse{
						Success: false,
						Message: remoteErr.Error(),
						Jobs:    []jobView{},
					})
				}
				logger.Error("Jobs listing request failed", map[string]interface{}{"error": err.Error()})
				return c.JSON(http.StatusBadGateway, models.ErrorResponse{
					Error:     "upstream_failed",
					Message:   utils.NewUpstreamError(err.Error()).Error(),
					RequestID: requestID,
					Timestamp: time.Now(),
				})
			}
			page = *resp
			snapshots.Set(ctx, key, page)
		}

		filters := filtersFromQuery(c)
		sortCfg := sortFromQuery(c)

		filtered := jobs.Apply(page.Jobs, filters)
		sorted := jobs.Sort(filtered, sortCfg)

		views := make([]jobView, len(sorted))
		for i, j := range sorted {
			views[i] = viewOf(j)
		}

		return c.JSON(http.StatusOK, jobsPageResponse{
			Success:       true,
			TotalCount:    page.TotalCount,
			Jobs:          views,
			Page:          page.Page,
			PageSize:      page.PageSize,
			TotalPages:    page.TotalPages,
			FilteredCount: len(sorted),
			ActiveFilters: filters.ActiveCount(),
			Sort:          sortCfg,
		})
	}
}

// JobStatsHandler proxies the corpus-wide job aggregates.
func JobStatsHandler(client *scraperapi.Client, snapshots *cache.SnapshotCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestID(c)
		logger := requestLogger(c)
		ctx := c.Request().Context()

		var stats models.JobStatsResponse
		if !snapshots.Get(ctx, cache.StatsKey, &stats) {
			resp, err := client.JobStats(ctx)
			if err != nil {
				logger.Error("Job stats request failed", map[string]interface{}{"error": err.Error()})
				return c.JSON(http.StatusBadGateway, models.ErrorResponse{
					Error:     "upstream_failed",
					Message:   utils.NewUpstreamError(err.Error()).Error(),
					RequestID: requestID,
					Timestamp: time.Now(),
				})
			}
			stats = *resp
			snapshots.Set(ctx, cache.StatsKey, stats)
		}

		return c.JSON(http.StatusOK, stats)
	}
}

// FilterOptionsHandler returns the dropdown vocabularies and sortable
// columns, so the UI never hardcodes them.
func FilterOptionsHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"job_types":      jobs.JobTypeOptions,
			"remote_options": jobs.RemoteOptions,
			"contract_types": jobs.ContractTypeOptions,
			"sort_columns": []jobs.Column{
				jobs.ColumnTitle,
				jobs.ColumnCompany,
				jobs.ColumnLocation,
				jobs.ColumnPostedDate,
				jobs.ColumnSalary,
			},
		})
	}
}

// SortCycleHandler computes the tri-state direction for a header click, so
// the UI applies the same cycle the listing endpoint expects.
func SortCycleHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestID(c)

		clicked, ok := jobs.ParseColumn(c.QueryParam("column"))
		if !ok {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   "unknown sort column: " + c.QueryParam("column"),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		currentCol, _ := jobs.ParseColumn(c.QueryParam("current_column"))
		currentDir := jobs.Direction(c.QueryParam("current_direction"))

		next := jobs.NextDirection(currentCol, currentDir, clicked)
		cfg := jobs.SortConfig{}
		if next != "" {
			cfg = jobs.SortConfig{Column: clicked, Direction: next}
		}
		return c.JSON(http.StatusOK, cfg)
	}
}
