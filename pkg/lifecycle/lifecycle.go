// Package lifecycle coordinates subsystem startup and shutdown for the
// application. Startup hooks run concurrently and report failures by
// subsystem name; readiness reflects both completion and success.
package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// ReadinessChecker reports whether a subsystem is ready to serve traffic.
type ReadinessChecker interface {
	Ready() bool
}

// Coordinator manages startup and shutdown hooks for the application lifecycle.
type Coordinator struct {
	ctx        context.Context
	cancel     context.CancelFunc
	startupWg  sync.WaitGroup
	shutdownWg sync.WaitGroup
	mu         sync.RWMutex
	started    bool
	failed     []string
}

// New creates a Coordinator with a cancellable context.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Context returns the coordinator's context, cancelled on shutdown.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnStartup registers a named function to run concurrently during startup.
// A non-nil error marks the subsystem as failed; the coordinator does not
// become ready while any startup failure is recorded.
func (c *Coordinator) OnStartup(name string, fn func() error) {
	c.startupWg.Go(func() {
		if err := fn(); err != nil {
			c.mu.Lock()
			c.failed = append(c.failed, fmt.Sprintf("%s: %v", name, err))
			c.mu.Unlock()
		}
	})
}

// OnShutdown registers a function to run concurrently during shutdown.
// Shutdown hooks should block on <-c.Context().Done() before executing cleanup.
func (c *Coordinator) OnShutdown(fn func()) {
	c.shutdownWg.Go(fn)
}

// Ready returns true after all startup hooks have completed without failure.
func (c *Coordinator) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.started && len(c.failed) == 0
}

// Failures returns the recorded startup failures, one "name: error" string
// per failed subsystem.
func (c *Coordinator) Failures() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.failed))
	copy(out, c.failed)
	return out
}

// WaitForStartup blocks until all startup hooks have completed and marks
// startup finished. The error aggregates any recorded failures.
func (c *Coordinator) WaitForStartup() error {
	c.startupWg.Wait()

	c.mu.Lock()
	c.started = true
	failed := c.failed
	c.mu.Unlock()

	if len(failed) > 0 {
		return fmt.Errorf("startup failures: %s", strings.Join(failed, "; "))
	}
	return nil
}

// Shutdown cancels the context and waits for shutdown hooks to complete
// within the given timeout.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.shutdownWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timeout after %v", timeout)
	}
}
