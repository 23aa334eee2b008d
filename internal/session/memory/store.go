// Package memory provides an in-memory session store for tests and local runs.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/discovery"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/session"
)

// Record is one stored session with the TTL it was written with.
type Record struct {
	Session discovery.Session
	TTL     time.Duration
}

// Store keeps session records in a map keyed like the durable store.
type Store struct {
	mu      sync.RWMutex
	records map[string]Record
	err     error
}

// New returns an empty Store.
func New() *Store {
	return &Store{records: make(map[string]Record)}
}

// FailWith makes every subsequent Put return err. Tests use this to exercise
// the pipeline's best-effort persistence policy.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Put stores the record under the session key.
func (s *Store) Put(_ context.Context, sess discovery.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.records[session.Key(sess.DiscoveryID)] = Record{Session: sess, TTL: ttl}
	return nil
}

// Close does nothing.
func (s *Store) Close() error { return nil }

// Get returns the record for a discovery ID, if present.
func (s *Store) Get(discoveryID string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[session.Key(discoveryID)]
	return rec, ok
}

// Len reports how many records are stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
