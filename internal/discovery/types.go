// Package discovery defines core types shared across the pipeline stages.
package discovery

import "time"

// Tier buckets a ranked URL by its priority score and drives dispatch order.
type Tier string

// Tier values; high-tier batches are always dispatched first.
const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// Priority boundaries between tiers.
const (
	TierHighFloor   = 70
	TierMediumFloor = 50
)

// TierFor maps a priority score onto its tier.
func TierFor(priority int) Tier {
	switch {
	case priority >= TierHighFloor:
		return TierHigh
	case priority >= TierMediumFloor:
		return TierMedium
	default:
		return TierLow
	}
}

// Rank returns the dispatch ordering of the tier (1 = dispatched first).
func (t Tier) Rank() int {
	switch t {
	case TierHigh:
		return 1
	case TierMedium:
		return 2
	default:
		return 3
	}
}

// Classification is the immutable, per-URL output of the rule table.
// Excluded implies the priority is meaningless and the URL is dropped
// before ranking.
type Classification struct {
	URL      string `json:"url"`
	Excluded bool   `json:"excluded"`
	Priority int    `json:"priority"`
	Category string `json:"category"`
	Reason   string `json:"reason"`
}

// Batch is a tier-homogeneous slice of ranked URLs serialized onto the queue.
type Batch struct {
	BatchID     string    `json:"batchId"`
	DiscoveryID string    `json:"discoveryId"`
	Tier        Tier      `json:"tier"`
	TierRank    int       `json:"tierRank"`
	URLs        []string  `json:"urls"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SentinelKind identifies the two control messages emitted after dispatch.
type SentinelKind string

// Sentinel kinds, in emission order.
const (
	SentinelPrepare SentinelKind = "PREPARE_INGESTION"
	SentinelTrigger SentinelKind = "TRIGGER_INGESTION"
)

// Sentinel is a control message signaling a pipeline phase transition to the
// downstream ingestion consumer. It is not content.
type Sentinel struct {
	Kind         SentinelKind `json:"kind"`
	DiscoveryID  string       `json:"discoveryId"`
	TotalBatches int          `json:"totalBatches"`
	TotalURLs    int          `json:"totalUrls"`
	EmittedAt    time.Time    `json:"emittedAt"`
	DelaySeconds int64        `json:"delaySeconds"`
}

// Session is the write-once summary record persisted per discovery run.
type Session struct {
	DiscoveryID          string    `json:"discoveryId"`
	StartedAt            time.Time `json:"startedAt"`
	TotalDiscovered      int       `json:"totalDiscovered"`
	TotalFiltered        int       `json:"totalFiltered"`
	BatchCount           int       `json:"batchCount"`
	DispatchSuccessCount int       `json:"dispatchSuccessCount"`
	DispatchFailureCount int       `json:"dispatchFailureCount"`
	DurationMs           int64     `json:"durationMs"`
	ExpiresAt            time.Time `json:"expiresAt"`
}

// Result is returned to the caller of a discovery run.
type Result struct {
	DiscoveryID     string `json:"discoveryId"`
	TotalDiscovered int    `json:"totalDiscovered"`
	FilteredURLs    int    `json:"filteredUrls"`
	BatchesCreated  int    `json:"batchesCreated"`
	BatchesQueued   int    `json:"batchesQueued"`
	DurationMs      int64  `json:"durationMs"`
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// IDGenerator produces discovery run IDs.
type IDGenerator interface {
	NewID() (string, error)
}
