package scraperapi

import (
	"context"
	"net/url"
	"strconv"

	"scrapedash/pkg/models"
)

// StartBatch submits a list of URLs for scraping. A success:false answer is
// returned to the caller as-is: it is the remote service's message to the
// user, not a transport failure.
func (c *Client) StartBatch(ctx context.Context, req *models.BatchScrapeRequest) (*models.BatchScrapeResponse, error) {
	var resp models.BatchScrapeResponse
	if err := c.post(ctx, "/scrape/batch", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ScrapeSingle scrapes one URL synchronously.
func (c *Client) ScrapeSingle(ctx context.Context, jobURL string) (*models.SingleScrapeResponse, error) {
	var resp models.SingleScrapeResponse
	if err := c.post(ctx, "/scrape/single", &models.SingleScrapeRequest{URL: jobURL}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Progress fetches the live batch progress snapshot.
func (c *Client) Progress(ctx context.Context) (*models.ProgressResponse, error) {
	var resp models.ProgressResponse
	if err := c.get(ctx, "/scrape/progress", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status fetches the condensed batch status snapshot.
func (c *Client) Status(ctx context.Context) (*models.StatusResponse, error) {
	var resp models.StatusResponse
	if err := c.get(ctx, "/scrape/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StopBatch asks the remote service to stop the current (or given) batch.
func (c *Client) StopBatch(ctx context.Context, req *models.StopRequest) (*models.StopResponse, error) {
	var resp models.StopResponse
	if err := c.post(ctx, "/scrape/stop", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Resources fetches the remote service's CPU/memory/worker snapshot.
func (c *Client) Resources(ctx context.Context) (*models.ResourceInfo, error) {
	var resp models.ResourceInfo
	if err := c.get(ctx, "/scrape/resources", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// History fetches recently finished batches, newest first.
func (c *Client) History(ctx context.Context, limit int) (*models.BatchHistoryResponse, error) {
	path := "/scrape/history"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var resp models.BatchHistoryResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BatchDetails fetches one batch with its per-task breakdown.
func (c *Client) BatchDetails(ctx context.Context, batchID string) (*models.BatchDetailsResponse, error) {
	var resp models.BatchDetailsResponse
	if err := c.get(ctx, "/scrape/batch/"+url.PathEscape(batchID), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListJobs fetches a page of scraped job records.
func (c *Client) ListJobs(ctx context.Context, q models.JobsQuery) (*models.JobsListResponse, error) {
	params := url.Values{}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(q.PageSize))
	}
	if q.Location != "" {
		params.Set("location", q.Location)
	}
	if q.Company != "" {
		params.Set("company", q.Company)
	}

	path := "/scrape/jobs"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var resp models.JobsListResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &RemoteError{Message: resp.Message}
	}
	return &resp, nil
}

// JobStats fetches corpus-wide aggregates over the scraped jobs.
func (c *Client) JobStats(ctx context.Context) (*models.JobStatsResponse, error) {
	var resp models.JobStatsResponse
	if err := c.get(ctx, "/scrape/jobs/stats", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
