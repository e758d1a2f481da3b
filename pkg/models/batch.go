package models

// TaskStatus is the lifecycle vocabulary shared by every batch and task
// endpoint on the remote scraping service.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusRunning   TaskStatus = "running"
	StatusCompleted TaskStatus = "completed"
	StatusFailed    TaskStatus = "failed"
	StatusCancelled TaskStatus = "cancelled"
	StatusPaused    TaskStatus = "paused"
)

// TaskInfo describes one URL's scrape operation within a batch.
type TaskInfo struct {
	TaskID          string     `json:"task_id"`
	URL             string     `json:"url"`
	Status          TaskStatus `json:"status"`
	WorkerID        *int       `json:"worker_id,omitempty"`
	StartedAt       string     `json:"started_at,omitempty"`
	CompletedAt     string     `json:"completed_at,omitempty"`
	JobsFound       int        `json:"jobs_found"`
	Error           string     `json:"error,omitempty"`
	ProgressPercent float64    `json:"progress_percent"`
}

// BatchInfo carries aggregate progress counts for a batch of URLs.
type BatchInfo struct {
	BatchID             string     `json:"batch_id"`
	TotalURLs           int        `json:"total_urls"`
	CompletedURLs       int        `json:"completed_urls"`
	FailedURLs          int        `json:"failed_urls"`
	PendingURLs         int        `json:"pending_urls"`
	RunningURLs         int        `json:"running_urls"`
	Status              TaskStatus `json:"status"`
	WorkersActive       int        `json:"workers_active"`
	StartedAt           string     `json:"started_at"`
	EstimatedCompletion string     `json:"estimated_completion,omitempty"`
	TotalJobsFound      int        `json:"total_jobs_found"`
}

// ProgressPercent derives the batch completion ratio from the URL counts.
// Finished means completed or failed; a batch with no URLs reports zero.
func (b *BatchInfo) ProgressPercent() float64 {
	if b == nil || b.TotalURLs == 0 {
		return 0
	}
	finished := b.CompletedURLs + b.FailedURLs
	return float64(finished) / float64(b.TotalURLs) * 100
}

// ResourceInfo is the remote service's CPU/memory/worker snapshot.
type ResourceInfo struct {
	CPUPercent         float64 `json:"cpu_percent"`
	MemoryPercent      float64 `json:"memory_percent"`
	MemoryAvailableGB  float64 `json:"memory_available_gb"`
	MemoryTotalGB      float64 `json:"memory_total_gb"`
	RecommendedWorkers int     `json:"recommended_workers"`
	MaxWorkers         int     `json:"max_workers"`
	CurrentWorkers     int     `json:"current_workers"`
	IsBusy             bool    `json:"is_busy"`
}

// BatchSummary is the compact batch record returned by the history endpoint.
type BatchSummary struct {
	BatchID        string `json:"batch_id"`
	Status         string `json:"status"`
	TotalURLs      int    `json:"total_urls"`
	CompletedURLs  int    `json:"completed_urls"`
	FailedURLs     int    `json:"failed_urls"`
	TotalJobsFound int    `json:"total_jobs_found"`
	CreatedAt      string `json:"created_at"`
	CompletedAt    string `json:"completed_at,omitempty"`
}
