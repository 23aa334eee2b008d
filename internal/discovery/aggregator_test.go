package discovery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubSource returns canned URL lists per root.
type stubSource struct {
	byRoot map[string][]string
}

func (s *stubSource) Parse(_ context.Context, rootURL string) []string {
	return s.byRoot[rootURL]
}

func TestDiscoverMergesSeedsAndSitemaps(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(&stubSource{byRoot: map[string][]string{
		"https://diabetes.org/sitemap.xml": {
			"https://diabetes.org/from-sitemap",
			"https://diabetes.org/seed-1", // duplicate of a seed
		},
	}}, nil)

	out := agg.Discover(context.Background(),
		[]string{"https://diabetes.org/seed-1", "https://diabetes.org/seed-2"},
		[]string{"https://diabetes.org/sitemap.xml"},
	)

	// Seeds first, then novel sitemap URLs, no duplicates.
	assert.Equal(t, []string{
		"https://diabetes.org/seed-1",
		"https://diabetes.org/seed-2",
		"https://diabetes.org/from-sitemap",
	}, out)
}

func TestDiscoverDeduplicatesWithinSeeds(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(&stubSource{byRoot: map[string][]string{}}, nil)

	out := agg.Discover(context.Background(),
		[]string{"https://diabetes.org/a", "https://diabetes.org/a", "", "https://diabetes.org/b"},
		nil,
	)
	assert.Equal(t, []string{"https://diabetes.org/a", "https://diabetes.org/b"}, out)
}

// Sitemap unavailability degrades quality, not availability.
func TestDiscoverSurvivesSitemapFailure(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(&stubSource{byRoot: map[string][]string{}}, nil)

	out := agg.Discover(context.Background(),
		[]string{"https://diabetes.org/seed-1"},
		[]string{"https://diabetes.org/sitemap.xml"},
	)
	assert.Equal(t, []string{"https://diabetes.org/seed-1"}, out)
}

func TestDiscoverRepeatedCallsDoNotCrossContaminate(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(&stubSource{byRoot: map[string][]string{}}, nil)
	seeds := []string{"https://diabetes.org/a"}

	first := agg.Discover(context.Background(), seeds, nil)
	second := agg.Discover(context.Background(), seeds, nil)
	assert.Equal(t, first, second)
	assert.Len(t, second, 1)
}
