package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/config"
)

func baseConfig() config.Config {
	cfg, _ := config.Load("")
	cfg.Queue.Provider = "memory"
	cfg.Store.Provider = "memory"
	return cfg
}

func TestNewWithMemoryProviders(t *testing.T) {
	cfg := baseConfig()

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.Logger())
	assert.NotNil(t, a.Metrics())
	assert.NotNil(t, a.Pipeline())
	assert.Equal(t, cfg.Discovery.TargetDomain, a.Config().Discovery.TargetDomain)
}

func TestNewRejectsUnknownQueueProvider(t *testing.T) {
	cfg := baseConfig()
	cfg.Queue.Provider = "kafka"

	_, err := New(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown queue provider")
}

func TestNewRejectsUnknownStoreProvider(t *testing.T) {
	cfg := baseConfig()
	cfg.Store.Provider = "dynamo"

	_, err := New(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store provider")
}

func TestNewWithNoopProviders(t *testing.T) {
	cfg := baseConfig()
	cfg.Queue.Provider = "noop"
	cfg.Store.Provider = "noop"

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	a.Close()
}
