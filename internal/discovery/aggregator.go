package discovery

import (
	"context"

	"go.uber.org/zap"
)

// SitemapSource resolves a root sitemap location into leaf page URLs.
type SitemapSource interface {
	Parse(ctx context.Context, rootURL string) []string
}

// Aggregator merges sitemap-derived URLs with the static seed list into a
// deduplicated candidate set. Sitemap unavailability degrades quality, not
// availability: the seed list alone is a valid result.
type Aggregator struct {
	source SitemapSource
	logger *zap.Logger
}

// NewAggregator constructs an Aggregator.
func NewAggregator(source SitemapSource, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{source: source, logger: logger}
}

// Discover returns the deduplicated candidate set: seeds first, then sitemap
// results in parser emission order. The dedup set is local to this call so
// repeated runs cannot cross-contaminate. Discover never fails.
func (a *Aggregator) Discover(ctx context.Context, seeds, sitemapRoots []string) []string {
	seen := make(map[string]struct{}, len(seeds))
	var out []string

	add := func(url string) {
		if url == "" {
			return
		}
		if _, dup := seen[url]; dup {
			return
		}
		seen[url] = struct{}{}
		out = append(out, url)
	}

	for _, seed := range seeds {
		add(seed)
	}

	fromSitemaps := 0
	for _, root := range sitemapRoots {
		urls := a.source.Parse(ctx, root)
		fromSitemaps += len(urls)
		for _, u := range urls {
			add(u)
		}
	}
	if fromSitemaps == 0 && len(sitemapRoots) > 0 {
		a.logger.Warn("sitemap discovery yielded no URLs, proceeding with seed list",
			zap.Int("seeds", len(seeds)))
	}

	a.logger.Info("candidate aggregation complete",
		zap.Int("seeds", len(seeds)),
		zap.Int("sitemap_urls", fromSitemaps),
		zap.Int("unique", len(out)),
	)
	return out
}
