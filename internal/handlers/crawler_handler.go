package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/forage/internal/interfaces"
	"github.com/ternarybob/forage/internal/models"
)

// CrawlerHandler handles HTTP requests for crawl runs and results
type CrawlerHandler struct {
	coordinator interfaces.CrawlCoordinator
	storage     interfaces.FoodItemStorage
	logger      arbor.ILogger
}

// NewCrawlerHandler creates a new CrawlerHandler
func NewCrawlerHandler(coordinator interfaces.CrawlCoordinator, storage interfaces.FoodItemStorage, logger arbor.ILogger) *CrawlerHandler {
	return &CrawlerHandler{
		coordinator: coordinator,
		storage:     storage,
		logger:      logger,
	}
}

// ScrapeHandler handles GET /crawler/scrape. It schedules a crawl run in the
// background and returns immediately, never blocking on crawl completion.
func (h *CrawlerHandler) ScrapeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	started, err := h.coordinator.TryStart(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to start crawl")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !started {
		WriteMessage(w, "Crawler is already running")
		return
	}

	WriteMessage(w, "Scraping started in background")
}

// StatusHandler handles GET /crawler/status
func (h *CrawlerHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{
		"is_running": h.coordinator.Running(),
	})
}

// ResultsHandler handles GET /crawler/results
func (h *CrawlerHandler) ResultsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	items, err := h.storage.GetAllItems(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list food items")
		WriteError(w, http.StatusInternalServerError, "failed to retrieve results")
		return
	}

	h.logger.Info().Int("count", len(items)).Msg("Retrieved food items")

	if items == nil {
		items = []*models.FoodItemRecord{}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
	})
}
