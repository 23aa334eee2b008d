// Package pipeline orchestrates one discovery run end to end.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/batch"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/classify"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/config"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/discovery"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/dispatch"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/metrics"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/rank"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/session"
)

// Request carries per-invocation overrides; zero values fall back to config.
type Request struct {
	TargetDomain     string `json:"targetDomain,omitempty"`
	MaxURLsPerBatch  int    `json:"maxUrlsPerBatch,omitempty"`
	MaxDiscoveryURLs int    `json:"maxDiscoveryUrls,omitempty"`
	MinPriority      int    `json:"minPriority,omitempty"`
}

// Pipeline runs the linear discovery flow: aggregate, classify, rank,
// partition, dispatch, trigger, record. The first four stages are fatal on
// error; the last three degrade the result but never fail the run.
type Pipeline struct {
	cfg        config.Config
	aggregator *discovery.Aggregator
	ranker     *rank.Ranker
	dispatcher *dispatch.Dispatcher
	trigger    *dispatch.Trigger
	store      session.Store
	clock      discovery.Clock
	ids        discovery.IDGenerator
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// New wires a Pipeline from its collaborators.
func New(
	cfg config.Config,
	aggregator *discovery.Aggregator,
	ranker *rank.Ranker,
	dispatcher *dispatch.Dispatcher,
	trigger *dispatch.Trigger,
	store session.Store,
	clock discovery.Clock,
	ids discovery.IDGenerator,
	logger *zap.Logger,
	m *metrics.Metrics,
) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		cfg:        cfg,
		aggregator: aggregator,
		ranker:     ranker,
		dispatcher: dispatcher,
		trigger:    trigger,
		store:      store,
		clock:      clock,
		ids:        ids,
		logger:     logger,
		metrics:    m,
	}
}

// Run executes one discovery run. The returned error is non-nil only when a
// stage whose failure corrupts the whole run (aggregation, classification,
// ranking, partitioning) fails; dispatch, sentinel, and persistence failures
// are absorbed into the result and logs.
func (p *Pipeline) Run(ctx context.Context, req Request) (discovery.Result, error) {
	startedAt := p.clock.Now()

	discoveryID, err := p.ids.NewID()
	if err != nil {
		return discovery.Result{}, fmt.Errorf("generate discovery id: %w", err)
	}

	domain := req.TargetDomain
	if domain == "" {
		domain = p.cfg.Discovery.TargetDomain
	}
	maxBatchSize := req.MaxURLsPerBatch
	if maxBatchSize <= 0 {
		maxBatchSize = p.cfg.Discovery.MaxURLsPerBatch
	}
	maxURLs := req.MaxDiscoveryURLs
	if maxURLs <= 0 {
		maxURLs = p.cfg.Discovery.MaxDiscoveryURLs
	}
	minPriority := req.MinPriority
	if minPriority <= 0 {
		minPriority = p.cfg.Discovery.MinPriority
	}

	log := p.logger.With(
		zap.String("discovery_id", discoveryID),
		zap.String("domain", domain),
	)
	log.Info("discovery run started")

	// Stage 1: aggregate. Never fails on sitemap trouble, but an exhausted
	// context here means the whole run's output would be garbage.
	candidates := p.aggregator.Discover(ctx, p.cfg.Discovery.SeedURLs, p.cfg.SitemapRoots(domain))
	if err := ctx.Err(); err != nil {
		return discovery.Result{}, fmt.Errorf("aggregation canceled: %w", err)
	}
	if p.metrics != nil {
		p.metrics.ObserveDiscovered(len(candidates))
	}

	// Stage 2: classify. Pure per-URL rule evaluation.
	classifier := classify.New(domain)
	results := make([]discovery.Classification, 0, len(candidates))
	for _, u := range candidates {
		results = append(results, classifier.Classify(u))
	}

	// Stage 3: filter and rank.
	ranked := p.ranker.Rank(results, minPriority, maxURLs)

	// Stage 4: partition into tiered batches.
	batches := batch.Partition(ranked, discoveryID, maxBatchSize, p.clock.Now())

	// Stage 5: dispatch. Partial failure tolerated.
	outcome := p.dispatcher.Dispatch(ctx, batches)

	// Stage 6: sentinels. Emitted even after a partial dispatch so the
	// ingestion job still runs over whatever was queued.
	triggerOutcome := p.trigger.Emit(ctx, discoveryID, len(batches), len(ranked))
	if triggerOutcome.Failed() {
		log.Warn("run completed with unsent sentinels; ingestion must be triggered manually")
	}

	durationMs := p.clock.Now().Sub(startedAt).Milliseconds()

	// Stage 7: record the session, best-effort.
	p.record(ctx, discovery.Session{
		DiscoveryID:          discoveryID,
		StartedAt:            startedAt,
		TotalDiscovered:      len(candidates),
		TotalFiltered:        len(ranked),
		BatchCount:           len(batches),
		DispatchSuccessCount: outcome.Success,
		DispatchFailureCount: outcome.Failure,
		DurationMs:           durationMs,
		ExpiresAt:            startedAt.Add(p.cfg.SessionTTL()),
	}, log)

	if p.metrics != nil {
		p.metrics.ObserveRunDuration(time.Duration(durationMs) * time.Millisecond)
	}

	result := discovery.Result{
		DiscoveryID:     discoveryID,
		TotalDiscovered: len(candidates),
		FilteredURLs:    len(ranked),
		BatchesCreated:  len(batches),
		BatchesQueued:   outcome.Success,
		DurationMs:      durationMs,
	}
	log.Info("discovery run finished",
		zap.Int("discovered", result.TotalDiscovered),
		zap.Int("filtered", result.FilteredURLs),
		zap.Int("batches", result.BatchesCreated),
		zap.Int("queued", result.BatchesQueued),
		zap.Int64("duration_ms", result.DurationMs))
	return result, nil
}

func (p *Pipeline) record(ctx context.Context, sess discovery.Session, log *zap.Logger) {
	if err := p.store.Put(ctx, sess, p.cfg.SessionTTL()); err != nil {
		log.Warn("session record write failed", zap.Error(err))
	}
}
