// Package viewstate implements the per-screen orchestration pattern shared
// by every screen: a status that moves through idle → loading → ready or
// failed, an initial fetch that may fan out over several calls, and
// mutations that eagerly re-fetch their dependent collections instead of
// patching local state.
package viewstate

import (
	"context"
	"sync"

	"github.com/thereidfleish/myace-sub000/internal/api"
)

// Phase is where a screen is in its load cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseFailed
	PhaseReady
)

// Status is the renderable screen state. Message is the banner text for
// PhaseFailed, built by api.UserMessage.
type Status struct {
	Phase   Phase
	Message string
}

// controller is the shared core embedded by the concrete screen
// controllers. It owns a context that Close cancels, so in-flight requests
// from a torn-down screen cannot write stale state.
type controller struct {
	mu     sync.Mutex
	status Status
	ctx    context.Context
	cancel context.CancelFunc
}

func newController(parent context.Context) controller {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return controller{ctx: ctx, cancel: cancel}
}

// Status returns the current screen state.
func (c *controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Close cancels any in-flight requests. The controller is unusable after.
func (c *controller) Close() {
	c.cancel()
}

// run executes one load cycle, tracking the phase transitions around it.
func (c *controller) run(fetch func(ctx context.Context) error) error {
	c.setStatus(Status{Phase: PhaseLoading})
	if err := fetch(c.ctx); err != nil {
		c.setStatus(Status{Phase: PhaseFailed, Message: api.UserMessage(err)})
		return err
	}
	c.setStatus(Status{Phase: PhaseReady})
	return nil
}

func (c *controller) setStatus(s Status) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}

// fetchAll launches the fetchers concurrently and waits for every one of
// them; the screen leaves the loading state only once all calls have
// completed. The first error wins, but the slower calls still run to
// completion. There is no ordering guarantee between fetchers.
func fetchAll(ctx context.Context, fetchers ...func(ctx context.Context) error) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, fetch := range fetchers {
		wg.Add(1)
		go func(fetch func(ctx context.Context) error) {
			defer wg.Done()
			if err := fetch(ctx); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(fetch)
	}

	wg.Wait()
	return firstErr
}
