package crawler

import (
	"context"
	"fmt"
	"sync"

	"github.com/ternarybob/arbor"
)

// Worker is the persistent background executor for crawl runs. It is started
// once at process startup, outlives individual requests, and is stopped
// during shutdown. The trigger endpoint hands work to it and returns
// immediately.
type Worker struct {
	jobs   chan func(context.Context)
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger arbor.ILogger
}

// NewWorker creates a new background worker
func NewWorker(logger arbor.ILogger) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		jobs:   make(chan func(context.Context), 1),
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
}

// Start launches the worker goroutine
func (w *Worker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.logger.Info().Msg("Background worker started")

		for {
			select {
			case <-w.ctx.Done():
				w.logger.Info().Msg("Background worker stopped")
				return
			case job := <-w.jobs:
				w.runJob(job)
			}
		}
	}()
}

// runJob executes a single job with panic recovery
func (w *Worker) runJob(job func(context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error().Str("panic", fmt.Sprintf("%v", r)).Msg("Background job panicked")
		}
	}()
	job(w.ctx)
}

// Submit queues a job for execution. Returns an error when the queue is full
// or the worker is shutting down.
func (w *Worker) Submit(job func(context.Context)) error {
	select {
	case <-w.ctx.Done():
		return fmt.Errorf("worker is stopped")
	case w.jobs <- job:
		return nil
	default:
		return fmt.Errorf("worker queue is full")
	}
}

// Stop cancels the worker context and waits for the goroutine to drain
func (w *Worker) Stop() {
	w.cancel()
	w.wg.Wait()
}
