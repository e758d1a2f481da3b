package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"scrapedash/internal/monitor"
	"scrapedash/internal/poller"
	"scrapedash/pkg/models"
)

// snapshotPayload is the uniform envelope for polled snapshots: the latest
// data, whether the first fetch is still outstanding, and the most recent
// fetch error if any.
type snapshotPayload struct {
	Data       interface{} `json:"data"`
	IsLoading  bool        `json:"is_loading"`
	Error      string      `json:"error,omitempty"`
	UpdatedAt  time.Time   `json:"updated_at"`
	IsActive   *bool       `json:"is_active,omitempty"`
	ShouldPoll *bool       `json:"should_poll,omitempty"`
}

func payloadFrom[T any](s poller.Snapshot[T]) snapshotPayload {
	p := snapshotPayload{
		IsLoading: s.Loading,
		UpdatedAt: s.UpdatedAt,
	}
	if s.Data != nil {
		p.Data = s.Data
	}
	if s.Err != nil {
		p.Error = s.Err.Error()
	}
	return p
}

// ProgressHandler serves the polled batch progress snapshot. A refresh=true
// query forces one fetch outside the schedule.
func ProgressHandler(m *monitor.Monitor[models.ProgressResponse]) echo.HandlerFunc {
	return func(c echo.Context) error {
		var snap poller.Snapshot[models.ProgressResponse]
		if c.QueryParam("refresh") == "true" {
			snap = m.Refetch(c.Request().Context())
		} else {
			snap = m.Snapshot()
		}

		payload := payloadFrom(snap)
		active := monitor.IsActive(snap)
		shouldPoll := monitor.ShouldPoll(snap)
		payload.IsActive = &active
		payload.ShouldPoll = &shouldPoll

		return c.JSON(http.StatusOK, payload)
	}
}

// StatusHandler serves the polled condensed status snapshot.
func StatusHandler(m *monitor.Monitor[models.StatusResponse]) echo.HandlerFunc {
	return func(c echo.Context) error {
		var snap poller.Snapshot[models.StatusResponse]
		if c.QueryParam("refresh") == "true" {
			snap = m.Refetch(c.Request().Context())
		} else {
			snap = m.Snapshot()
		}
		return c.JSON(http.StatusOK, payloadFrom(snap))
	}
}

// ResourcesHandler serves the polled resource usage snapshot.
func ResourcesHandler(m *monitor.Monitor[models.ResourceInfo]) echo.HandlerFunc {
	return func(c echo.Context) error {
		var snap poller.Snapshot[models.ResourceInfo]
		if c.QueryParam("refresh") == "true" {
			snap = m.Refetch(c.Request().Context())
		} else {
			snap = m.Snapshot()
		}
		return c.JSON(http.StatusOK, payloadFrom(snap))
	}
}
