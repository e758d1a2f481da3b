// Package poller provides a generic fixed-interval polling primitive over an
// asynchronous fetch, keeping the latest result, a first-load flag and the
// most recent error.
//
// All fetches run on a single goroutine, so responses apply strictly in
// request order and a slow fetch can never overlap its successor tick or have
// a stale result overwrite a newer one. A failed fetch records the error and
// polling continues at the next tick; there is no backoff. Pausing suspends
// the schedule only, never an in-flight fetch: a result already underway is
// still applied, which is safe because results are idempotent snapshots.
package poller

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Fetcher produces one snapshot of remote state.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Snapshot is the consumer-facing view of a poller's state. Loading is true
// only until the first fetch settles; Err holds the most recent failure and
// is cleared by the next success.
type Snapshot[T any] struct {
	Data      *T
	Err       error
	Loading   bool
	UpdatedAt time.Time
}

// Options tune optional poller behavior.
type Options struct {
	// OnError is invoked (on the polling goroutine) after every failed fetch.
	OnError func(error)
	// RefetchLimit bounds manual Refetch calls; nil applies a default of one
	// per second with a burst of three.
	RefetchLimit *rate.Limiter
}

// Poller runs a Fetcher on a fixed interval. The zero value is not usable;
// construct with New, then Start. One Poller owns exactly one schedule and
// one result holder, so simultaneous pollers stay independent.
type Poller[T any] struct {
	fetch    Fetcher[T]
	interval time.Duration
	onError  func(error)
	limiter  *rate.Limiter

	mu   sync.RWMutex
	snap Snapshot[T]

	pauseCh chan bool
	kickCh  chan chan struct{}
	done    chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
}

// New creates a poller. Nothing runs until Start.
func New[T any](fetch Fetcher[T], interval time.Duration, opts Options) *Poller[T] {
	limiter := opts.RefetchLimit
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Every(time.Second), 3)
	}

	return &Poller[T]{
		fetch:    fetch,
		interval: interval,
		onError:  opts.OnError,
		limiter:  limiter,
		snap:     Snapshot[T]{Loading: true},
		pauseCh:  make(chan bool),
		kickCh:   make(chan chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start performs an immediate fetch and begins the interval schedule. It is
// idempotent; the schedule ends when ctx is cancelled or Stop is called.
func (p *Poller[T]) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		go p.run(ctx)
	})
}

func (p *Poller[T]) run(ctx context.Context) {
	p.doFetch(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	paused := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.done:
			return
		case next := <-p.pauseCh:
			if next == paused {
				continue
			}
			paused = next
			if paused {
				ticker.Stop()
			} else {
				// Regaining consumers triggers one immediate fetch before
				// the schedule restarts.
				p.doFetch(ctx)
				ticker.Reset(p.interval)
			}
		case <-ticker.C:
			if !paused {
				p.doFetch(ctx)
			}
		case reply := <-p.kickCh:
			p.doFetch(ctx)
			close(reply)
		}
	}
}

func (p *Poller[T]) doFetch(ctx context.Context) {
	data, err := p.fetch(ctx)

	p.mu.Lock()
	// A fetch that settles after teardown must not mutate the snapshot.
	select {
	case <-p.done:
		p.mu.Unlock()
		return
	default:
	}
	p.snap.Loading = false
	p.snap.UpdatedAt = time.Now()
	if err != nil {
		p.snap.Err = err
	} else {
		p.snap.Data = &data
		p.snap.Err = nil
	}
	p.mu.Unlock()

	if err != nil && p.onError != nil {
		p.onError(err)
	}
}

// Snapshot returns the current state. Safe to call from any goroutine.
func (p *Poller[T]) Snapshot() Snapshot[T] {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}

// Pause suspends the schedule. An in-flight fetch is not cancelled.
func (p *Poller[T]) Pause() {
	select {
	case p.pauseCh <- true:
	case <-p.done:
	}
}

// Resume restarts the schedule with one immediate fetch first.
func (p *Poller[T]) Resume() {
	select {
	case p.pauseCh <- false:
	case <-p.done:
	}
}

// Refetch performs one fetch outside the schedule and waits for it to settle.
// Calls beyond the rate limit, or after Stop, return immediately.
func (p *Poller[T]) Refetch(ctx context.Context) {
	if !p.limiter.Allow() {
		return
	}

	reply := make(chan struct{})
	select {
	case p.kickCh <- reply:
	case <-p.done:
		return
	case <-ctx.Done():
		return
	}

	select {
	case <-reply:
	case <-p.done:
	case <-ctx.Done():
	}
}

// Stop tears the poller down. After Stop returns no fetch result is applied
// and every other method degrades to a no-op.
func (p *Poller[T]) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
	})
}
