package interfaces

import "context"

// PageFetcher - interface for retrieving a single page body
type PageFetcher interface {
	// Fetch issues one GET and returns the resolved URL (after redirects)
	// and the response body.
	Fetch(ctx context.Context, url string) (resolvedURL string, body []byte, err error)
}

// CrawlCoordinator - interface enforcing the single-flight crawl guarantee
type CrawlCoordinator interface {
	// TryStart schedules a crawl run on the background worker. Returns
	// (false, nil) if a run is already active, in which case nothing is
	// scheduled. A non-nil error means run setup failed; the guard is
	// released before returning.
	TryStart(ctx context.Context) (bool, error)

	// Running reports whether a crawl run is currently active.
	Running() bool
}
