package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/forage/internal/common"
	"github.com/ternarybob/forage/internal/interfaces"
)

// Service triggers crawl runs on a cron schedule. Disabled by default; when
// enabled it goes through the coordinator exactly like the HTTP trigger, so
// the single-flight guarantee covers scheduled and manual runs alike.
type Service struct {
	cron        *cron.Cron
	coordinator interfaces.CrawlCoordinator
	config      *common.SchedulerConfig
	logger      arbor.ILogger
}

// NewService creates a new scheduler service
func NewService(coordinator interfaces.CrawlCoordinator, config *common.SchedulerConfig, logger arbor.ILogger) *Service {
	return &Service{
		cron:        cron.New(),
		coordinator: coordinator,
		config:      config,
		logger:      logger,
	}
}

// Start registers the crawl schedule and starts the cron runner
func (s *Service) Start() error {
	if !s.config.Enabled {
		s.logger.Debug().Msg("Scheduler disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.config.Schedule, s.triggerCrawl)
	if err != nil {
		return fmt.Errorf("invalid crawl schedule %q: %w", s.config.Schedule, err)
	}

	s.cron.Start()
	s.logger.Info().Str("schedule", s.config.Schedule).Msg("Crawl scheduler started")
	return nil
}

// triggerCrawl fires a scheduled run. An already-running crawl is a normal
// condition, not an error.
func (s *Service) triggerCrawl() {
	started, err := s.coordinator.TryStart(context.Background())
	if err != nil {
		s.logger.Error().Err(err).Msg("Scheduled crawl failed to start")
		return
	}
	if !started {
		s.logger.Info().Msg("Scheduled crawl skipped, run already active")
		return
	}
	s.logger.Info().Msg("Scheduled crawl started")
}

// Stop halts the cron runner
func (s *Service) Stop() {
	if s.config.Enabled {
		s.cron.Stop()
		s.logger.Info().Msg("Crawl scheduler stopped")
	}
}
