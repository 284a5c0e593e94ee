package app

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/forage/internal/common"
	"github.com/ternarybob/forage/internal/handlers"
	"github.com/ternarybob/forage/internal/interfaces"
	"github.com/ternarybob/forage/internal/services/crawler"
	"github.com/ternarybob/forage/internal/services/extract"
	"github.com/ternarybob/forage/internal/services/scheduler"
	"github.com/ternarybob/forage/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Extraction service (Gemini)
	ExtractService interfaces.ExtractService

	// Crawl execution
	Worker       *crawler.Worker
	CrawlService *crawler.Service
	Coordinator  interfaces.CrawlCoordinator

	// Scheduled crawl trigger
	SchedulerService *scheduler.Service

	// HTTP handlers
	APIHandler      *handlers.APIHandler
	CrawlerHandler  *handlers.CrawlerHandler
	AnalysisHandler *handlers.AnalysisHandler
}

// New creates and wires all application components. The background worker is
// started here so it exists for the whole process lifetime, independent of
// any request.
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	storageManager, err := badger.NewManager(logger, &config.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	extractService, err := extract.NewService(config, logger)
	if err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to initialize extraction service: %w", err)
	}

	fetcher := crawler.NewFetcher(&config.Crawler, logger)
	crawlService := crawler.NewService(fetcher, extractService, storageManager.FoodItemStorage(), &config.Crawler, logger)

	worker := crawler.NewWorker(logger)
	worker.Start()

	coordinator := crawler.NewCoordinator(crawlService, storageManager.FoodItemStorage(), worker, logger)

	schedulerService := scheduler.NewService(coordinator, &config.Scheduler, logger)
	if err := schedulerService.Start(); err != nil {
		worker.Stop()
		storageManager.Close()
		return nil, fmt.Errorf("failed to start scheduler: %w", err)
	}

	app := &App{
		Config:           config,
		Logger:           logger,
		StorageManager:   storageManager,
		ExtractService:   extractService,
		Worker:           worker,
		CrawlService:     crawlService,
		Coordinator:      coordinator,
		SchedulerService: schedulerService,
		APIHandler:       handlers.NewAPIHandler(),
		CrawlerHandler:   handlers.NewCrawlerHandler(coordinator, storageManager.FoodItemStorage(), logger),
		AnalysisHandler:  handlers.NewAnalysisHandler(extractService, storageManager.AnalysisStorage(), logger),
	}

	logger.Info().Msg("Application initialized")

	return app, nil
}

// Close stops background services and releases resources
func (a *App) Close() {
	a.SchedulerService.Stop()
	a.Worker.Stop()

	if err := a.StorageManager.Close(); err != nil {
		a.Logger.Error().Err(err).Msg("Failed to close storage")
	}

	a.Logger.Info().Msg("Application closed")
}
