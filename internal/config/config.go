// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Discovery DiscoveryConfig `mapstructure:"discovery"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Dispatch  DispatchConfig  `mapstructure:"dispatch"`
	Queue     QueueConfig     `mapstructure:"queue"`
	Store     StoreConfig     `mapstructure:"store"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig controls the HTTP invocation surface.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DiscoveryConfig governs aggregation, classification, and batching.
type DiscoveryConfig struct {
	TargetDomain     string   `mapstructure:"target_domain"`
	SeedURLs         []string `mapstructure:"seed_urls"`
	SitemapURLs      []string `mapstructure:"sitemap_urls"`
	MaxDiscoveryURLs int      `mapstructure:"max_discovery_urls"`
	MinPriority      int      `mapstructure:"min_priority"`
	MaxURLsPerBatch  int      `mapstructure:"max_urls_per_batch"`
}

// FetchConfig controls sitemap document retrieval.
type FetchConfig struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	UserAgent      string `mapstructure:"user_agent"`
	MaxParallel    int    `mapstructure:"max_parallel"`
	MaxDepth       int    `mapstructure:"max_depth"`
}

// DispatchConfig paces queue sends and sets the ingestion trigger delay.
type DispatchConfig struct {
	SendIntervalMs      int `mapstructure:"send_interval_ms"`
	TriggerDelaySeconds int `mapstructure:"trigger_delay_seconds"`
}

// QueueConfig selects and configures the message queue backend.
type QueueConfig struct {
	Provider string         `mapstructure:"provider"`
	GCP      GCPQueueConfig `mapstructure:"gcp"`
}

// GCPQueueConfig holds Pub/Sub coordinates.
type GCPQueueConfig struct {
	ProjectID string `mapstructure:"project_id"`
	TopicID   string `mapstructure:"topic_id"`
}

// StoreConfig selects and configures the session record store.
type StoreConfig struct {
	Provider string      `mapstructure:"provider"`
	TTLDays  int         `mapstructure:"ttl_days"`
	Redis    RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds connection settings for the Redis session store.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment. An empty path skips the config
// file and relies on defaults plus CLARA_* environment variables.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CLARA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)

	v.SetDefault("discovery.target_domain", "diabetes.org")
	v.SetDefault("discovery.seed_urls", []string{
		"https://diabetes.org/about-diabetes",
		"https://diabetes.org/about-diabetes/type-1",
		"https://diabetes.org/about-diabetes/type-2",
		"https://diabetes.org/living-with-diabetes",
		"https://diabetes.org/food-nutrition",
		"https://diabetes.org/health-wellness",
		"https://diabetes.org/es/sobre-la-diabetes",
	})
	v.SetDefault("discovery.sitemap_urls", []string{})
	v.SetDefault("discovery.max_discovery_urls", 500)
	v.SetDefault("discovery.min_priority", 50)
	v.SetDefault("discovery.max_urls_per_batch", 15)

	v.SetDefault("fetch.timeout_seconds", 10)
	v.SetDefault("fetch.user_agent", "ClaraDiscoveryBot/1.0 (+https://github.com/ASUCICREPO/ADA-Clara-sub003)")
	v.SetDefault("fetch.max_parallel", 10)
	v.SetDefault("fetch.max_depth", 5)

	v.SetDefault("dispatch.send_interval_ms", 100)
	v.SetDefault("dispatch.trigger_delay_seconds", 300)

	v.SetDefault("queue.provider", "memory")
	v.SetDefault("store.provider", "memory")
	v.SetDefault("store.ttl_days", 30)
	v.SetDefault("store.redis.addr", "localhost:6379")

	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Discovery.TargetDomain == "" {
		return fmt.Errorf("discovery.target_domain must be set")
	}
	if c.Discovery.MaxDiscoveryURLs <= 0 {
		return fmt.Errorf("discovery.max_discovery_urls must be > 0")
	}
	if c.Discovery.MinPriority < 0 || c.Discovery.MinPriority > 100 {
		return fmt.Errorf("discovery.min_priority must be in [0,100]")
	}
	if c.Discovery.MaxURLsPerBatch <= 0 {
		return fmt.Errorf("discovery.max_urls_per_batch must be > 0")
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		return fmt.Errorf("fetch.timeout_seconds must be > 0")
	}
	if c.Dispatch.TriggerDelaySeconds < 0 {
		return fmt.Errorf("dispatch.trigger_delay_seconds must be >= 0")
	}
	switch c.Queue.Provider {
	case "pubsub":
		if c.Queue.GCP.ProjectID == "" || c.Queue.GCP.TopicID == "" {
			return fmt.Errorf("queue.gcp.project_id and queue.gcp.topic_id must be set for the pubsub provider")
		}
	case "memory", "noop":
	default:
		return fmt.Errorf("unknown queue provider: %s", c.Queue.Provider)
	}
	switch c.Store.Provider {
	case "redis":
		if c.Store.Redis.Addr == "" {
			return fmt.Errorf("store.redis.addr must be set for the redis provider")
		}
	case "memory", "noop":
	default:
		return fmt.Errorf("unknown store provider: %s", c.Store.Provider)
	}
	return nil
}

// FetchTimeout returns the sitemap fetch timeout as a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// SendInterval returns the inter-send dispatch pacing as a duration.
func (c Config) SendInterval() time.Duration {
	return time.Duration(c.Dispatch.SendIntervalMs) * time.Millisecond
}

// TriggerDelay returns the delayed sentinel's delivery delay as a duration.
func (c Config) TriggerDelay() time.Duration {
	return time.Duration(c.Dispatch.TriggerDelaySeconds) * time.Second
}

// SessionTTL returns the session record time-to-live as a duration.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.Store.TTLDays) * 24 * time.Hour
}

// SitemapRoots returns the configured sitemap locations, defaulting to the
// conventional root sitemap of the target domain.
func (c Config) SitemapRoots(domain string) []string {
	if len(c.Discovery.SitemapURLs) > 0 {
		return c.Discovery.SitemapURLs
	}
	return []string{fmt.Sprintf("https://%s/sitemap.xml", domain)}
}
