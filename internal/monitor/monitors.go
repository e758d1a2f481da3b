package monitor

import (
	"context"

	"scrapedash/internal/config"
	"scrapedash/internal/logging"
	"scrapedash/internal/poller"
	"scrapedash/internal/scraperapi"
	"scrapedash/pkg/models"
)

// NewProgress polls /scrape/progress at the configured cadence.
func NewProgress(client *scraperapi.Client, cfg *config.Config, logger logging.Logger) *Monitor[models.ProgressResponse] {
	p := poller.New(func(ctx context.Context) (models.ProgressResponse, error) {
		resp, err := client.Progress(ctx)
		if err != nil {
			return models.ProgressResponse{}, err
		}
		return *resp, nil
	}, cfg.Polling.ProgressInterval, poller.Options{
		OnError: func(err error) {
			logger.Error("Failed to fetch batch progress", map[string]interface{}{"error": err.Error()})
		},
	})
	return newMonitor(p, cfg.Polling.IdleTimeout)
}

// NewStatus polls /scrape/status at the configured cadence.
func NewStatus(client *scraperapi.Client, cfg *config.Config, logger logging.Logger) *Monitor[models.StatusResponse] {
	p := poller.New(func(ctx context.Context) (models.StatusResponse, error) {
		resp, err := client.Status(ctx)
		if err != nil {
			return models.StatusResponse{}, err
		}
		return *resp, nil
	}, cfg.Polling.StatusInterval, poller.Options{
		OnError: func(err error) {
			logger.Error("Failed to fetch batch status", map[string]interface{}{"error": err.Error()})
		},
	})
	return newMonitor(p, cfg.Polling.IdleTimeout)
}

// NewResources polls /scrape/resources at the configured cadence.
func NewResources(client *scraperapi.Client, cfg *config.Config, logger logging.Logger) *Monitor[models.ResourceInfo] {
	p := poller.New(func(ctx context.Context) (models.ResourceInfo, error) {
		resp, err := client.Resources(ctx)
		if err != nil {
			return models.ResourceInfo{}, err
		}
		return *resp, nil
	}, cfg.Polling.ResourcesInterval, poller.Options{
		OnError: func(err error) {
			logger.Error("Failed to fetch resource info", map[string]interface{}{"error": err.Error()})
		},
	})
	return newMonitor(p, cfg.Polling.IdleTimeout)
}

// ShouldPoll reports whether a progress snapshot indicates an active batch
// worth polling aggressively.
func ShouldPoll(s poller.Snapshot[models.ProgressResponse]) bool {
	return s.Data != nil && s.Data.IsRunning
}

// IsActive reports whether the snapshot's batch is currently running.
func IsActive(s poller.Snapshot[models.ProgressResponse]) bool {
	return s.Data != nil && s.Data.BatchInfo != nil && s.Data.BatchInfo.Status == models.StatusRunning
}
