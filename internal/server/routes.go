package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Crawler routes
	mux.HandleFunc("/crawler/scrape", s.app.CrawlerHandler.ScrapeHandler)   // GET - trigger background crawl
	mux.HandleFunc("/crawler/status", s.app.CrawlerHandler.StatusHandler)   // GET - crawl run status
	mux.HandleFunc("/crawler/results", s.app.CrawlerHandler.ResultsHandler) // GET - stored food items

	// Video analysis routes
	mux.HandleFunc("/analyze-video", s.app.AnalysisHandler.AnalyzeVideoHandler) // POST - multipart video upload
	mux.HandleFunc("/analysis", s.app.AnalysisHandler.LatestAnalysisHandler)    // GET - latest stored meal plan

	// System routes
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}
