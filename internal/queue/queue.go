// Package queue defines the interface for the batch message queue.
// This abstraction keeps the pipeline independent of a specific broker
// (e.g., GCP Pub/Sub, SQS, RabbitMQ).
package queue

import "context"

// Message is one send: a JSON payload plus queryable string attributes and a
// requested delivery delay. Brokers without native delay carry the delay as
// metadata for a delaying consumer.
type Message struct {
	Data         []byte
	Attributes   map[string]string
	DelaySeconds int64
}

// Publisher is the send-only sink the dispatcher and trigger write to.
type Publisher interface {
	// Publish sends one message and blocks until the broker acknowledges it,
	// so the caller can count per-message failures.
	Publish(ctx context.Context, msg Message) error

	// Close cleans up client connections and resources.
	Close() error
}

// NoOpPublisher performs no operations. Useful for dry runs.
type NoOpPublisher struct{}

// Publish for NoOpPublisher does nothing and returns nil.
func (NoOpPublisher) Publish(_ context.Context, _ Message) error { return nil }

// Close for NoOpPublisher does nothing and returns nil.
func (NoOpPublisher) Close() error { return nil }
