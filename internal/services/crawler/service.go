package crawler

import (
	"context"
	"fmt"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/forage/internal/common"
	"github.com/ternarybob/forage/internal/interfaces"
	"github.com/ternarybob/forage/internal/models"
)

// Service executes a single crawl run: fetch each configured URL in order,
// extract food items from the page text and persist them. Requests are
// deliberately sequential with an inter-request delay to keep load on the
// target sites low.
type Service struct {
	fetcher   interfaces.PageFetcher
	extractor interfaces.ExtractService
	storage   interfaces.FoodItemStorage
	limiter   *RateLimiter
	converter *md.Converter
	config    *common.CrawlerConfig
	logger    arbor.ILogger
}

// NewService creates a new crawl service
func NewService(fetcher interfaces.PageFetcher, extractor interfaces.ExtractService, storage interfaces.FoodItemStorage, config *common.CrawlerConfig, logger arbor.ILogger) *Service {
	return &Service{
		fetcher:   fetcher,
		extractor: extractor,
		storage:   storage,
		limiter:   NewRateLimiter(config.RequestDelay.Std()),
		converter: md.NewConverter("", true, nil),
		config:    config,
		logger:    logger,
	}
}

// Run crawls all configured URLs sequentially. A failed fetch or an empty
// extraction skips that page only; the run continues with the next URL.
// Extracted items are written as one batch per page.
func (s *Service) Run(ctx context.Context) error {
	// Defensive clear: the coordinator already cleared the store before
	// scheduling, but nothing may survive from an earlier run once writes
	// from this run begin.
	if err := s.storage.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to clear food item store: %w", err)
	}

	s.logger.Info().Int("urls", len(s.config.URLs)).Msg("Starting crawl run")

	totalItems := 0
	for _, targetURL := range s.config.URLs {
		if err := s.limiter.Wait(ctx, targetURL); err != nil {
			return fmt.Errorf("crawl aborted: %w", err)
		}

		count, err := s.crawlPage(ctx, targetURL)
		if err != nil {
			s.logger.Error().Err(err).Str("url", targetURL).Msg("Page crawl failed, continuing with next URL")
			continue
		}
		totalItems += count
	}

	s.logger.Info().Int("items", totalItems).Msg("Crawl run completed")
	return nil
}

// crawlPage fetches one URL, extracts items from its body and stores them.
func (s *Service) crawlPage(ctx context.Context, targetURL string) (int, error) {
	s.logger.Info().Str("url", targetURL).Msg("Fetching page")

	resolvedURL, body, err := s.fetcher.Fetch(ctx, targetURL)
	if err != nil {
		return 0, fmt.Errorf("fetch failed: %w", err)
	}

	items := s.extractor.ExtractFoodItems(ctx, s.pageText(body))
	if len(items) == 0 {
		s.logger.Info().Str("url", targetURL).Msg("No food items found on page")
		return 0, nil
	}

	records := make([]*models.FoodItemRecord, 0, len(items))
	for _, item := range items {
		records = append(records, &models.FoodItemRecord{
			SourceURL:           resolvedURL,
			FoodName:            item.FoodName,
			FoodItemDescription: item.FoodItemDescription,
			Price:               item.Price,
			Quantity:            item.Quantity,
		})
	}

	if err := s.storage.StoreItems(ctx, records); err != nil {
		return 0, fmt.Errorf("failed to store items: %w", err)
	}

	s.logger.Info().Str("url", resolvedURL).Int("items", len(records)).Msg("Page items stored")
	return len(records), nil
}

// pageText converts an HTML body to markdown to cut markup noise before
// prompting the model. The raw body is used when conversion fails.
func (s *Service) pageText(body []byte) string {
	text, err := s.converter.ConvertString(string(body))
	if err != nil || text == "" {
		return string(body)
	}
	return text
}
