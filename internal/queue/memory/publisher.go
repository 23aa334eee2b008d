// Package memory contains an in-memory publisher for tests and local runs.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/queue"
)

// SentMessage captures one publish call with its send time.
type SentMessage struct {
	Message queue.Message
	SentAt  time.Time
}

// Publisher records published messages for inspection. An optional failure
// hook lets tests inject per-message send errors.
type Publisher struct {
	mu       sync.RWMutex
	messages []SentMessage
	failFunc func(queue.Message) error
}

// New returns a memory Publisher.
func New() *Publisher {
	return &Publisher{}
}

// FailWith installs a hook consulted before each send; a non-nil return is
// surfaced as the publish error and the message is not recorded.
func (p *Publisher) FailWith(fn func(queue.Message) error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failFunc = fn
}

// Publish records the message or returns the injected failure.
func (p *Publisher) Publish(_ context.Context, msg queue.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failFunc != nil {
		if err := p.failFunc(msg); err != nil {
			return err
		}
	}
	p.messages = append(p.messages, SentMessage{Message: msg, SentAt: time.Now()})
	return nil
}

// Close does nothing.
func (p *Publisher) Close() error { return nil }

// Messages returns a copy of the recorded sends in send order.
func (p *Publisher) Messages() []SentMessage {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]SentMessage, len(p.messages))
	copy(out, p.messages)
	return out
}
