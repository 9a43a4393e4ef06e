package app

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

// Worker runs at most one background job at a time.
type Worker struct {
	group  *errgroup.Group
	onBusy func(busy bool)

	mu      sync.Mutex
	running bool
	lastErr error
}

// NewWorker creates a single-slot worker. onBusy, if set, is called with true
// from TryRun when a job is accepted and with false from the worker goroutine
// once the job is over, whatever the outcome. onBusy must not call TryRun
// itself.
func NewWorker(onBusy func(busy bool)) *Worker {
	group := new(errgroup.Group)
	group.SetLimit(1)
	return &Worker{
		group:  group,
		onBusy: onBusy,
	}
}

// TryRun starts job unless another one is still running, in which case it
// returns false and job is dropped. Once onBusy(false) has been delivered the
// next TryRun is accepted.
func (w *Worker) TryRun(job func() error) bool {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return false
	}
	w.running = true
	w.mu.Unlock()

	w.setBusy(true)
	// The group slot of the previous job may not be released yet; Go waits
	// for it instead of refusing.
	w.group.Go(func() error {
		err := job()

		w.mu.Lock()
		w.lastErr = err
		w.running = false
		w.mu.Unlock()

		w.setBusy(false)
		// The group keeps the first error forever, so job errors stay out of it.
		return nil
	})
	return true
}

// Wait blocks until the running job, if any, is done and returns its error.
func (w *Worker) Wait() error {
	_ = w.group.Wait()
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

func (w *Worker) setBusy(busy bool) {
	if w.onBusy != nil {
		w.onBusy(busy)
	}
}
