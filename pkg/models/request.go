package models

// BatchScrapeRequest starts a scrape batch on the remote service. The bounds
// mirror what the service accepts; validation happens before any request is
// sent.
type BatchScrapeRequest struct {
	URLs              []string `json:"urls" validate:"required,min=1,dive,url"`
	MaxWorkers        *int     `json:"max_workers,omitempty" validate:"omitempty,min=1,max=10"`
	MaxRecordsPerFile *int     `json:"max_records_per_file,omitempty" validate:"omitempty,min=1,max=500"`
	Priority          *int     `json:"priority,omitempty" validate:"omitempty,min=1,max=5"`
}

// SingleScrapeRequest scrapes one URL synchronously.
type SingleScrapeRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// StopRequest stops the current batch, or a specific one when BatchID is set.
type StopRequest struct {
	BatchID string `json:"batch_id,omitempty"`
	Force   bool   `json:"force,omitempty"`
}

// JobsQuery is the paging/filter query for the jobs listing endpoint.
type JobsQuery struct {
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
	Location string `query:"location"`
	Company  string `query:"company"`
}
