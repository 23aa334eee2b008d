// Package dispatch sends batches and sentinels to the message queue.
package dispatch

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/discovery"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/metrics"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/queue"
)

// DefaultSendInterval paces queue sends so dispatch does not overwhelm the
// broker's ingestion rate. Politeness, not correctness.
const DefaultSendInterval = 100 * time.Millisecond

// Attribute keys attached to every batch message for consumer-side filtering.
const (
	AttrPriority = "priority"
	AttrBatchID  = "batch_id"
)

// Outcome summarizes one dispatch pass.
type Outcome struct {
	Success int `json:"successCount"`
	Failure int `json:"failureCount"`
	Total   int `json:"total"`
}

// Dispatcher sends batches in strict tier order with inter-send pacing.
// A failed send is counted and logged, never fatal: one bad batch must not
// abort dispatch of the rest.
type Dispatcher struct {
	publisher queue.Publisher
	limiter   *rate.Limiter
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// NewDispatcher constructs a Dispatcher pacing sends at one per interval.
func NewDispatcher(publisher queue.Publisher, interval time.Duration, logger *zap.Logger, m *metrics.Metrics) *Dispatcher {
	if interval <= 0 {
		interval = DefaultSendInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		publisher: publisher,
		limiter:   rate.NewLimiter(rate.Every(interval), 1),
		logger:    logger,
		metrics:   m,
	}
}

// Dispatch sends every batch in ascending tier-rank order: the high tier is
// fully dispatched before medium, medium before low. Downstream consumers
// rely on this to start processing high-value content first. Sends within a
// tier stay in partition order (stable sort). Cancellation mid-dispatch keeps
// batches already sent as successes.
func (d *Dispatcher) Dispatch(ctx context.Context, batches []discovery.Batch) Outcome {
	ordered := make([]discovery.Batch, len(batches))
	copy(ordered, batches)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TierRank < ordered[j].TierRank
	})

	outcome := Outcome{Total: len(ordered)}
	for _, b := range ordered {
		if err := d.limiter.Wait(ctx); err != nil {
			d.logger.Warn("dispatch canceled, partial results stand",
				zap.Int("sent", outcome.Success), zap.Int("remaining", outcome.Total-outcome.Success-outcome.Failure))
			outcome.Failure = outcome.Total - outcome.Success
			break
		}
		if err := d.send(ctx, b); err != nil {
			outcome.Failure++
			d.logger.Error("batch dispatch failed, continuing",
				zap.String("batch_id", b.BatchID),
				zap.String("tier", string(b.Tier)),
				zap.Error(err))
			continue
		}
		outcome.Success++
		d.logger.Debug("batch dispatched",
			zap.String("batch_id", b.BatchID),
			zap.String("tier", string(b.Tier)),
			zap.Int("urls", len(b.URLs)))
	}

	if d.metrics != nil {
		d.metrics.ObserveDispatch(outcome.Success, outcome.Failure)
	}
	d.logger.Info("dispatch complete",
		zap.Int("success", outcome.Success),
		zap.Int("failure", outcome.Failure),
		zap.Int("total", outcome.Total))
	return outcome
}

func (d *Dispatcher) send(ctx context.Context, b discovery.Batch) error {
	payload, err := json.Marshal(b)
	if err != nil {
		return err
	}
	return d.publisher.Publish(ctx, queue.Message{
		Data: payload,
		Attributes: map[string]string{
			AttrPriority: string(b.Tier),
			AttrBatchID:  b.BatchID,
		},
	})
}
