package models

import "time"

// BatchScrapeResponse is the remote service's answer to a batch start.
type BatchScrapeResponse struct {
	Success      bool          `json:"success"`
	Message      string        `json:"message"`
	BatchID      string        `json:"batch_id,omitempty"`
	BatchInfo    *BatchInfo    `json:"batch_info,omitempty"`
	ResourceInfo *ResourceInfo `json:"resource_info,omitempty"`
}

// SingleScrapeResponse is the remote service's answer to a single-URL scrape.
type SingleScrapeResponse struct {
	Success         bool    `json:"success"`
	Message         string  `json:"message"`
	URL             string  `json:"url"`
	TaskID          string  `json:"task_id,omitempty"`
	JobsFound       int     `json:"jobs_found"`
	Jobs            []Job   `json:"jobs"`
	Error           string  `json:"error,omitempty"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// ProgressResponse is the live batch progress snapshot.
type ProgressResponse struct {
	IsRunning    bool          `json:"is_running"`
	BatchInfo    *BatchInfo    `json:"batch_info,omitempty"`
	Tasks        []TaskInfo    `json:"tasks"`
	ResourceInfo *ResourceInfo `json:"resource_info,omitempty"`
}

// StatusResponse is the condensed batch status snapshot.
type StatusResponse struct {
	IsRunning       bool     `json:"is_running"`
	BatchID         string   `json:"batch_id,omitempty"`
	TotalURLs       *int     `json:"total_urls,omitempty"`
	CompletedURLs   *int     `json:"completed_urls,omitempty"`
	FailedURLs      *int     `json:"failed_urls,omitempty"`
	PendingURLs     *int     `json:"pending_urls,omitempty"`
	RunningURLs     *int     `json:"running_urls,omitempty"`
	ProgressPercent *float64 `json:"progress_percent,omitempty"`
	WorkersActive   *int     `json:"workers_active,omitempty"`
	TotalJobsFound  *int     `json:"total_jobs_found,omitempty"`
	Message         string   `json:"message,omitempty"`
}

// StopResponse is the remote service's answer to a stop request.
type StopResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	StoppedTasks int    `json:"stopped_tasks"`
}

// BatchHistoryResponse lists recently finished batches.
type BatchHistoryResponse struct {
	Batches []BatchSummary `json:"batches"`
}

// BatchDetailsResponse is one batch with its per-task breakdown.
type BatchDetailsResponse struct {
	Batch BatchInfo  `json:"batch"`
	Tasks []TaskInfo `json:"tasks"`
}

// JobsListResponse is a page of scraped job records.
type JobsListResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	TotalCount int    `json:"total_count"`
	Jobs       []Job  `json:"jobs"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalPages int    `json:"total_pages"`
}

// StatEntry is a labelled count used by the stats endpoint's top lists.
type StatEntry struct {
	Location string `json:"location,omitempty"`
	Company  string `json:"company,omitempty"`
	Skill    string `json:"skill,omitempty"`
	Count    int    `json:"count"`
}

// JobStatsResponse aggregates corpus-wide counts over the scraped jobs.
type JobStatsResponse struct {
	TotalJobs       int         `json:"total_jobs"`
	UniqueCompanies int         `json:"unique_companies"`
	UniqueLocations int         `json:"unique_locations"`
	TopLocations    []StatEntry `json:"top_locations"`
	TopCompanies    []StatEntry `json:"top_companies"`
	TopSkills       []StatEntry `json:"top_skills"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
