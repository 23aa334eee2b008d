package queue

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/pubsub"

	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/clock/system"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/discovery"
)

// Attribute keys the Pub/Sub publisher adds to every message. Pub/Sub has no
// native per-message delay, so the requested delay travels as metadata that
// the delaying subscription honors before handing the message downstream.
const (
	attrDelaySeconds = "delay_seconds"
	attrReadyAt      = "ready_at"
)

// PubSubPublisher implements Publisher for Google Cloud Pub/Sub.
type PubSubPublisher struct {
	client *pubsub.Client
	topic  *pubsub.Topic
	clock  discovery.Clock
}

// NewPubSubPublisher creates a Pub/Sub client and verifies the topic exists.
// It authenticates using Application Default Credentials. A nil clock falls
// back to the system clock.
func NewPubSubPublisher(ctx context.Context, projectID, topicID string, clock discovery.Clock) (*PubSubPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}

	topic := client.Topic(topicID)
	exists, err := topic.Exists(ctx)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("check pubsub topic %q: %w", topicID, err)
	}
	if !exists {
		_ = client.Close()
		return nil, fmt.Errorf("pubsub topic %q does not exist in project %q", topicID, projectID)
	}

	if clock == nil {
		clock = system.New()
	}
	return &PubSubPublisher{client: client, topic: topic, clock: clock}, nil
}

// NewPubSubPublisherWithClient wraps an existing client; used by tests with a
// pstest fake server.
func NewPubSubPublisherWithClient(client *pubsub.Client, topicID string, clock discovery.Clock) *PubSubPublisher {
	if clock == nil {
		clock = system.New()
	}
	return &PubSubPublisher{client: client, topic: client.Topic(topicID), clock: clock}
}

// Publish sends one message and waits for the server acknowledgement so the
// dispatcher can count failures per batch.
func (p *PubSubPublisher) Publish(ctx context.Context, msg Message) error {
	attrs := make(map[string]string, len(msg.Attributes)+2)
	for k, v := range msg.Attributes {
		attrs[k] = v
	}
	attrs[attrDelaySeconds] = strconv.FormatInt(msg.DelaySeconds, 10)
	attrs[attrReadyAt] = strconv.FormatInt(p.clock.Now().Add(time.Duration(msg.DelaySeconds)*time.Second).Unix(), 10)

	result := p.topic.Publish(ctx, &pubsub.Message{
		Data:       msg.Data,
		Attributes: attrs,
	})
	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}

// Close stops the topic's publish goroutines and closes the client.
func (p *PubSubPublisher) Close() error {
	p.topic.Stop()
	if err := p.client.Close(); err != nil {
		return fmt.Errorf("close pubsub client: %w", err)
	}
	return nil
}
