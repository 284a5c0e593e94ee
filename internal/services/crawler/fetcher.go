package crawler

import (
	"context"
	"fmt"

	"github.com/gocolly/colly/v2"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/forage/internal/common"
	"github.com/ternarybob/forage/internal/interfaces"
)

// browserHeaders mimic a regular desktop browser session. Grocery retailer
// sites block obvious bot traffic; this is an anti-blocking posture, not a
// security control.
var browserHeaders = map[string]string{
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language":           "de,en-US;q=0.9,en;q=0.8",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
}

// Fetcher retrieves single pages with Colly using a browser-like header set
type Fetcher struct {
	baseCollector *colly.Collector
	config        *common.CrawlerConfig
	logger        arbor.ILogger
}

// NewFetcher creates a new page fetcher
func NewFetcher(config *common.CrawlerConfig, logger arbor.ILogger) *Fetcher {
	c := colly.NewCollector(
		colly.UserAgent(config.UserAgent),
		colly.IgnoreRobotsTxt(),
		colly.AllowURLRevisit(),
	)
	c.MaxBodySize = config.MaxBodySize
	c.SetRequestTimeout(config.RequestTimeout.Std())

	return &Fetcher{
		baseCollector: c,
		config:        config,
		logger:        logger,
	}
}

// Fetch issues a single GET for the target URL and returns the resolved URL
// and response body. Each fetch runs on a fresh collector clone so state from
// one request never leaks into the next.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) (string, []byte, error) {
	var (
		resolvedURL string
		body        []byte
		fetchErr    error
	)

	collector := f.baseCollector.Clone()

	collector.OnRequest(func(r *colly.Request) {
		for key, value := range browserHeaders {
			r.Headers.Set(key, value)
		}
	})

	collector.OnResponse(func(r *colly.Response) {
		resolvedURL = r.Request.URL.String()
		body = append([]byte(nil), r.Body...)
	})

	collector.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(targetURL)
	}()

	select {
	case <-ctx.Done():
		return "", nil, fmt.Errorf("fetch canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return "", nil, fmt.Errorf("visit failed: %w", err)
		}
		if fetchErr != nil {
			return "", nil, fmt.Errorf("request failed: %w", fetchErr)
		}
	}

	return resolvedURL, body, nil
}

var _ interfaces.PageFetcher = (*Fetcher)(nil)
