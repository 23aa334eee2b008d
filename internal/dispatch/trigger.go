package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/discovery"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/metrics"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/queue"
)

// DefaultTriggerDelay is the window the delayed sentinel gives batch
// consumers to drain the queue before the ingestion job starts.
const DefaultTriggerDelay = 300 * time.Second

// Sentinel message attribute keys.
const (
	AttrMessageType = "message_type"
	AttrDiscoveryID = "discovery_id"
)

// TriggerOutcome reports which sentinels were emitted. Failures are carried
// as values rather than propagated: the run stays successful, but a missing
// sentinel means the ingestion job needs manual triggering.
type TriggerOutcome struct {
	PrepareSent bool
	TriggerSent bool
	PrepareErr  error
	TriggerErr  error
}

// Failed reports whether any sentinel emission failed.
func (o TriggerOutcome) Failed() bool {
	return o.PrepareErr != nil || o.TriggerErr != nil
}

// Trigger emits the two-phase ingestion sentinels after dispatch completes.
type Trigger struct {
	publisher queue.Publisher
	delay     time.Duration
	clock     discovery.Clock
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// NewTrigger constructs a Trigger with the configured delay for the second
// sentinel.
func NewTrigger(publisher queue.Publisher, delay time.Duration, clock discovery.Clock, logger *zap.Logger, m *metrics.Metrics) *Trigger {
	if delay <= 0 {
		delay = DefaultTriggerDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Trigger{publisher: publisher, delay: delay, clock: clock, logger: logger, metrics: m}
}

// Emit sends PREPARE_INGESTION immediately, then TRIGGER_INGESTION with the
// configured delivery delay. It runs regardless of how many batches failed to
// dispatch: a partial dispatch still triggers ingestion of whatever was
// queued.
func (t *Trigger) Emit(ctx context.Context, discoveryID string, totalBatches, totalURLs int) TriggerOutcome {
	var outcome TriggerOutcome

	outcome.PrepareErr = t.emit(ctx, discovery.Sentinel{
		Kind:         discovery.SentinelPrepare,
		DiscoveryID:  discoveryID,
		TotalBatches: totalBatches,
		TotalURLs:    totalURLs,
		EmittedAt:    t.clock.Now(),
		DelaySeconds: 0,
	})
	outcome.PrepareSent = outcome.PrepareErr == nil

	outcome.TriggerErr = t.emit(ctx, discovery.Sentinel{
		Kind:         discovery.SentinelTrigger,
		DiscoveryID:  discoveryID,
		TotalBatches: totalBatches,
		TotalURLs:    totalURLs,
		EmittedAt:    t.clock.Now(),
		DelaySeconds: int64(t.delay / time.Second),
	})
	outcome.TriggerSent = outcome.TriggerErr == nil

	for kind, err := range map[discovery.SentinelKind]error{
		discovery.SentinelPrepare: outcome.PrepareErr,
		discovery.SentinelTrigger: outcome.TriggerErr,
	} {
		if err == nil {
			continue
		}
		if t.metrics != nil {
			t.metrics.ObserveSentinelFailure()
		}
		t.logger.Warn("sentinel emission failed, ingestion requires manual trigger",
			zap.String("kind", string(kind)),
			zap.String("discovery_id", discoveryID),
			zap.Error(err))
	}
	return outcome
}

func (t *Trigger) emit(ctx context.Context, s discovery.Sentinel) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal sentinel: %w", err)
	}
	err = t.publisher.Publish(ctx, queue.Message{
		Data: payload,
		Attributes: map[string]string{
			AttrMessageType: string(s.Kind),
			AttrDiscoveryID: s.DiscoveryID,
		},
		DelaySeconds: s.DelaySeconds,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", s.Kind, err)
	}
	return nil
}
