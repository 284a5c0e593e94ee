package crawler

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/forage/internal/interfaces"
)

// Coordinator enforces the single-flight crawl guarantee: at most one run is
// active at any time. The guard is an atomic compare-and-set, so two triggers
// racing on different request goroutines cannot both start a run.
type Coordinator struct {
	running atomic.Bool
	crawl   *Service
	storage interfaces.FoodItemStorage
	worker  *Worker
	logger  arbor.ILogger
}

// NewCoordinator creates a new run coordinator
func NewCoordinator(crawl *Service, storage interfaces.FoodItemStorage, worker *Worker, logger arbor.ILogger) *Coordinator {
	return &Coordinator{
		crawl:   crawl,
		storage: storage,
		worker:  worker,
		logger:  logger,
	}
}

// TryStart claims the run guard, clears prior results and schedules the crawl
// on the background worker. The triggering caller returns immediately; the
// completion hook releases the guard when the run ends, success or failure.
func (c *Coordinator) TryStart(ctx context.Context) (bool, error) {
	if !c.running.CompareAndSwap(false, true) {
		c.logger.Info().Msg("Crawl already running, trigger ignored")
		return false, nil
	}

	// Eager clear before scheduling; the crawl service clears again
	// defensively before its own writes begin.
	if err := c.storage.ClearAll(ctx); err != nil {
		c.running.Store(false)
		return false, fmt.Errorf("failed to clear food item store: %w", err)
	}
	c.logger.Info().Msg("Food item store cleared, scheduling crawl")

	if err := c.worker.Submit(c.run); err != nil {
		c.running.Store(false)
		return false, fmt.Errorf("failed to schedule crawl: %w", err)
	}

	return true, nil
}

// run executes the crawl on the worker goroutine. The deferred completion
// hook runs exactly once per started run.
func (c *Coordinator) run(ctx context.Context) {
	var runErr error
	defer func() {
		c.onComplete(runErr)
	}()

	runErr = c.crawl.Run(ctx)
}

// onComplete releases the single-flight guard and logs the run outcome
func (c *Coordinator) onComplete(err error) {
	c.running.Store(false)
	if err != nil {
		c.logger.Error().Err(err).Msg("Crawl run failed")
		return
	}
	c.logger.Info().Msg("Crawl run finished")
}

// Running reports whether a crawl run is currently active
func (c *Coordinator) Running() bool {
	return c.running.Load()
}

var _ interfaces.CrawlCoordinator = (*Coordinator)(nil)
