// Package batch groups ranked URLs into tier-homogeneous queue batches.
package batch

import (
	"fmt"
	"time"

	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/discovery"
)

// DefaultMaxBatchSize is the per-batch URL cap.
const DefaultMaxBatchSize = 15

// Partition slices the ranked list into consecutive chunks of at most
// maxBatchSize within each tier, preserving rank order. Batch IDs are
// "<discoveryID>-<tier>-<index>" with a zero-based index per tier, so IDs
// never collide within a run. No batch ever mixes tiers.
func Partition(ranked []discovery.Classification, discoveryID string, maxBatchSize int, createdAt time.Time) []discovery.Batch {
	if maxBatchSize <= 0 {
		maxBatchSize = DefaultMaxBatchSize
	}

	byTier := map[discovery.Tier][]string{}
	for _, res := range ranked {
		tier := discovery.TierFor(res.Priority)
		byTier[tier] = append(byTier[tier], res.URL)
	}

	var batches []discovery.Batch
	for _, tier := range []discovery.Tier{discovery.TierHigh, discovery.TierMedium, discovery.TierLow} {
		urls := byTier[tier]
		for index := 0; len(urls) > 0; index++ {
			size := maxBatchSize
			if len(urls) < size {
				size = len(urls)
			}
			batches = append(batches, discovery.Batch{
				BatchID:     fmt.Sprintf("%s-%s-%d", discoveryID, tier, index),
				DiscoveryID: discoveryID,
				Tier:        tier,
				TierRank:    tier.Rank(),
				URLs:        urls[:size],
				CreatedAt:   createdAt,
			})
			urls = urls[size:]
		}
	}
	return batches
}
