// Package sitemap resolves sitemap-index documents into leaf page URLs.
package sitemap

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
)

// Fetcher retrieves a single document body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetchConfig controls the sitemap fetcher.
type FetchConfig struct {
	UserAgent string
	Timeout   time.Duration
}

// CollyFetcher implements Fetcher using a Colly collector.
type CollyFetcher struct {
	cfg  FetchConfig
	base *colly.Collector
}

// NewCollyFetcher builds a CollyFetcher.
func NewCollyFetcher(cfg FetchConfig) *CollyFetcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	// Clones share the visited-URL store, and the same sitemap root is
	// fetched again on every run. Revisits must stay allowed or every run
	// after the first gets ErrAlreadyVisited and loses the sitemap source.
	c := colly.NewCollector(
		colly.Async(false),
		colly.IgnoreRobotsTxt(),
		colly.AllowURLRevisit(),
	)
	return &CollyFetcher{cfg: cfg, base: c}
}

// Fetch executes a single HTTP GET and returns the raw response body.
func (f *CollyFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetch canceled: %w", err)
	}

	collector := f.base.Clone()
	if f.cfg.UserAgent != "" {
		collector.UserAgent = f.cfg.UserAgent
	}
	collector.SetRequestTimeout(f.cfg.Timeout)

	var (
		body     []byte
		fetchErr error
	)
	collector.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	collector.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	if err := collector.Visit(url); err != nil {
		return nil, fmt.Errorf("visit %s: %w", url, err)
	}
	collector.Wait()

	if fetchErr != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, fetchErr)
	}
	return body, nil
}
