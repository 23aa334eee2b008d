// Package session persists the write-once summary record of a discovery run.
package session

import (
	"context"
	"time"

	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/discovery"
)

// Store is the durable key-value sink for discovery session records. Writes
// are best-effort from the pipeline's perspective: a failed Put is logged by
// the caller and never fails the run.
type Store interface {
	// Put upserts the session keyed by its discovery ID with a time-to-live
	// after which the store may purge the record.
	Put(ctx context.Context, s discovery.Session, ttl time.Duration) error

	// Close releases client resources.
	Close() error
}

// Key returns the synthetic store key for a discovery run.
func Key(discoveryID string) string {
	return "discovery:" + discoveryID
}

// NoOpStore discards session records.
type NoOpStore struct{}

// Put for NoOpStore does nothing and returns nil.
func (NoOpStore) Put(_ context.Context, _ discovery.Session, _ time.Duration) error { return nil }

// Close for NoOpStore does nothing and returns nil.
func (NoOpStore) Close() error { return nil }
