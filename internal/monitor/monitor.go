// Package monitor binds pollers to the scraping service's snapshot endpoints
// and suspends them while nobody is watching.
//
// The browser dashboard this serves pauses its refresh when the tab is
// hidden; on the server the equivalent signal is consumer activity. Every
// snapshot read touches the monitor, and a poller whose snapshot has not
// been read for the idle timeout is paused. The next read resumes it, which
// performs one immediate fetch before the schedule restarts.
package monitor

import (
	"context"
	"sync"
	"time"

	"scrapedash/internal/poller"
)

// Monitor owns one poller plus its idle watcher. Create via the endpoint
// constructors in this package.
type Monitor[T any] struct {
	poller *poller.Poller[T]
	idle   time.Duration

	mu     sync.Mutex
	last   time.Time
	paused bool

	done     chan struct{}
	stopOnce sync.Once
}

func newMonitor[T any](p *poller.Poller[T], idle time.Duration) *Monitor[T] {
	return &Monitor[T]{
		poller: p,
		idle:   idle,
		last:   time.Now(),
		done:   make(chan struct{}),
	}
}

// Start begins polling and, when an idle timeout is configured, the watcher
// that suspends the schedule once snapshot reads stop coming.
func (m *Monitor[T]) Start(ctx context.Context) {
	m.poller.Start(ctx)
	if m.idle > 0 {
		go m.watch()
	}
}

func (m *Monitor[T]) watch() {
	ticker := time.NewTicker(m.idle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			// The flag and the poller transition must change together: with
			// the lock dropped in between, a read could clear the flag and
			// send its resume before the stale pause lands, leaving the
			// schedule suspended while the monitor thinks it is active.
			// Pause is only a channel handshake, so holding the lock across
			// it is cheap.
			m.mu.Lock()
			if !m.paused && time.Since(m.last) > m.idle {
				m.paused = true
				m.poller.Pause()
			}
			m.mu.Unlock()
		}
	}
}

// Touch records consumer activity, resuming a suspended schedule.
func (m *Monitor[T]) Touch() {
	m.mu.Lock()
	m.last = time.Now()
	if m.paused {
		m.paused = false
		m.poller.Resume()
	}
	m.mu.Unlock()
}

// Snapshot returns the latest polled state and counts as consumer activity.
func (m *Monitor[T]) Snapshot() poller.Snapshot[T] {
	m.Touch()
	return m.poller.Snapshot()
}

// Refetch forces one fetch outside the schedule and returns the result.
func (m *Monitor[T]) Refetch(ctx context.Context) poller.Snapshot[T] {
	m.Touch()
	m.poller.Refetch(ctx)
	return m.poller.Snapshot()
}

// Stop tears down the poller and the idle watcher.
func (m *Monitor[T]) Stop() {
	m.stopOnce.Do(func() {
		close(m.done)
		m.poller.Stop()
	})
}
