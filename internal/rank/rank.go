// Package rank filters, orders, and caps classified URLs.
package rank

import (
	"sort"

	"go.uber.org/zap"

	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/discovery"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/metrics"
)

// Defaults for the filter stage. The minimum priority is a product knob
// (historically 30, now 50) and is always configurable.
const (
	DefaultMinPriority = 50
	DefaultCap         = 500
)

// Ranker orders classification results for batching.
type Ranker struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// New constructs a Ranker. The metrics sink may be nil.
func New(logger *zap.Logger, m *metrics.Metrics) *Ranker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{logger: logger, metrics: m}
}

// Rank drops excluded and below-threshold entries, sorts the rest by priority
// descending, and truncates to cap. The sort is stable: equal-priority URLs
// keep their discovery order.
func (r *Ranker) Rank(results []discovery.Classification, minPriority, cap int) []discovery.Classification {
	if cap <= 0 {
		cap = DefaultCap
	}

	ranked := make([]discovery.Classification, 0, len(results))
	excluded := 0
	for _, res := range results {
		if res.Excluded {
			excluded++
			continue
		}
		if res.Priority < minPriority {
			continue
		}
		ranked = append(ranked, res)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Priority > ranked[j].Priority
	})

	if len(ranked) > cap {
		r.logger.Warn("ranked set exceeds cap, truncating",
			zap.Int("ranked", len(ranked)), zap.Int("cap", cap))
		ranked = ranked[:cap]
	}

	r.report(len(results), excluded, ranked)
	return ranked
}

// report emits the priority-distribution summary. Advisory only.
func (r *Ranker) report(total, excluded int, ranked []discovery.Classification) {
	dist := map[discovery.Tier]int{}
	for _, res := range ranked {
		dist[discovery.TierFor(res.Priority)]++
	}

	r.logger.Info("priority distribution",
		zap.Int("candidates", total),
		zap.Int("excluded", excluded),
		zap.Int("ranked", len(ranked)),
		zap.Int("high", dist[discovery.TierHigh]),
		zap.Int("medium", dist[discovery.TierMedium]),
		zap.Int("low", dist[discovery.TierLow]),
	)
	if r.metrics != nil {
		r.metrics.ObserveExcluded(excluded)
		for tier, count := range dist {
			r.metrics.ObserveRanked(string(tier), count)
		}
	}
}
