// Package app initializes and holds long-lived application services, acting
// as a dependency injection container.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/clock/system"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/config"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/discovery"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/dispatch"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/id/uuid"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/logging"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/metrics"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/pipeline"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/queue"
	queuememory "github.com/ASUCICREPO/ADA-Clara-sub003/internal/queue/memory"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/rank"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/session"
	sessionmemory "github.com/ASUCICREPO/ADA-Clara-sub003/internal/session/memory"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/sitemap"
)

// App holds the shared, long-lived services: logger, metrics, the queue
// publisher, the session store, and the assembled pipeline. It is built once
// at startup and injected into the commands that need it.
type App struct {
	cfg       config.Config
	logger    *zap.Logger
	metrics   *metrics.Metrics
	publisher queue.Publisher
	store     session.Store
	pipeline  *pipeline.Pipeline
}

// New builds the App from configuration, failing fast if any critical
// service cannot be initialized.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	logger.Info("initializing services",
		zap.String("queue_provider", cfg.Queue.Provider),
		zap.String("store_provider", cfg.Store.Provider))

	clock := system.New()

	publisher, err := newPublisher(ctx, cfg, clock, logger)
	if err != nil {
		return nil, err
	}

	store, err := newStore(ctx, cfg, logger)
	if err != nil {
		_ = publisher.Close()
		return nil, err
	}

	m := metrics.New()
	ids := uuid.NewGenerator()

	fetcher := sitemap.NewCollyFetcher(sitemap.FetchConfig{
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   cfg.FetchTimeout(),
	})
	parser := sitemap.NewParser(fetcher, sitemap.Config{
		MaxParallel: cfg.Fetch.MaxParallel,
		MaxDepth:    cfg.Fetch.MaxDepth,
	}, logger)

	pipe := pipeline.New(
		cfg,
		discovery.NewAggregator(parser, logger),
		rank.New(logger, m),
		dispatch.NewDispatcher(publisher, cfg.SendInterval(), logger, m),
		dispatch.NewTrigger(publisher, cfg.TriggerDelay(), clock, logger, m),
		store,
		clock,
		ids,
		logger,
		m,
	)

	return &App{
		cfg:       cfg,
		logger:    logger,
		metrics:   m,
		publisher: publisher,
		store:     store,
		pipeline:  pipe,
	}, nil
}

func newPublisher(ctx context.Context, cfg config.Config, clock discovery.Clock, logger *zap.Logger) (queue.Publisher, error) {
	switch cfg.Queue.Provider {
	case "pubsub":
		logger.Info("connecting to pubsub", zap.String("topic", cfg.Queue.GCP.TopicID))
		pub, err := queue.NewPubSubPublisher(ctx, cfg.Queue.GCP.ProjectID, cfg.Queue.GCP.TopicID, clock)
		if err != nil {
			return nil, fmt.Errorf("init queue: %w", err)
		}
		return pub, nil
	case "memory":
		logger.Info("using in-memory queue publisher")
		return queuememory.New(), nil
	case "noop":
		logger.Info("using no-op queue publisher; batches will be discarded")
		return queue.NoOpPublisher{}, nil
	default:
		return nil, fmt.Errorf("unknown queue provider: %s", cfg.Queue.Provider)
	}
}

func newStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (session.Store, error) {
	switch cfg.Store.Provider {
	case "redis":
		logger.Info("connecting to redis", zap.String("addr", cfg.Store.Redis.Addr))
		store, err := session.NewRedisStore(ctx, session.RedisConfig{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("init store: %w", err)
		}
		return store, nil
	case "memory":
		logger.Info("using in-memory session store")
		return sessionmemory.New(), nil
	case "noop":
		logger.Info("using no-op session store; run records will be discarded")
		return session.NoOpStore{}, nil
	default:
		return nil, fmt.Errorf("unknown store provider: %s", cfg.Store.Provider)
	}
}

// Config returns the loaded configuration.
func (a *App) Config() config.Config { return a.cfg }

// Logger returns the shared zap logger.
func (a *App) Logger() *zap.Logger { return a.logger }

// Metrics returns the Prometheus collectors.
func (a *App) Metrics() *metrics.Metrics { return a.metrics }

// Pipeline returns the assembled discovery pipeline.
func (a *App) Pipeline() *pipeline.Pipeline { return a.pipeline }

// Close gracefully shuts down all services.
func (a *App) Close() {
	a.logger.Info("shutting down services")
	if err := a.publisher.Close(); err != nil {
		a.logger.Warn("error closing queue publisher", zap.Error(err))
	}
	if err := a.store.Close(); err != nil {
		a.logger.Warn("error closing session store", zap.Error(err))
	}
	// Best-effort flush; stderr sync errors are expected on some platforms.
	_ = a.logger.Sync()
}
