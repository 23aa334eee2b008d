// Package queue_test contains unit tests for the queue package.
package queue_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/queue"
)

// fixedClock pins the publish time so the ready_at attribute is deterministic.
type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newFakeClient(t *testing.T) *pubsub.Client {
	t.Helper()
	ctx := context.Background()

	srv := pstest.NewServer()
	t.Cleanup(func() { _ = srv.Close() })

	conn, err := grpc.NewClient(srv.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	client, err := pubsub.NewClient(ctx, "project-id", option.WithGRPCConn(conn))
	require.NoError(t, err)
	return client
}

func TestPubSubPublisher_PublishAndClose(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient(t)

	topic, err := client.CreateTopic(ctx, "ingestion-queue")
	require.NoError(t, err)
	sub, err := client.CreateSubscription(ctx, "sub-id", pubsub.SubscriptionConfig{Topic: topic})
	require.NoError(t, err)

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	publisher := queue.NewPubSubPublisherWithClient(client, "ingestion-queue", fixedClock{now: now})

	err = publisher.Publish(ctx, queue.Message{
		Data:         []byte(`{"batchId":"run1-high-0"}`),
		Attributes:   map[string]string{"priority": "high"},
		DelaySeconds: 300,
	})
	require.NoError(t, err)

	recvCtx, cancel := context.WithCancel(ctx)
	c := make(chan *pubsub.Message, 1)
	go func() {
		_ = sub.Receive(recvCtx, func(_ context.Context, msg *pubsub.Message) {
			msg.Ack()
			c <- msg
			cancel()
		})
	}()
	msg := <-c

	assert.Equal(t, `{"batchId":"run1-high-0"}`, string(msg.Data))
	assert.Equal(t, "high", msg.Attributes["priority"])
	assert.Equal(t, "300", msg.Attributes["delay_seconds"])
	assert.Equal(t, strconv.FormatInt(now.Add(300*time.Second).Unix(), 10), msg.Attributes["ready_at"])

	assert.NoError(t, publisher.Close())
}

func TestPubSubPublisher_ZeroDelayAttribute(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient(t)

	topic, err := client.CreateTopic(ctx, "ingestion-queue")
	require.NoError(t, err)
	sub, err := client.CreateSubscription(ctx, "sub-id", pubsub.SubscriptionConfig{Topic: topic})
	require.NoError(t, err)

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	publisher := queue.NewPubSubPublisherWithClient(client, "ingestion-queue", fixedClock{now: now})
	require.NoError(t, publisher.Publish(ctx, queue.Message{Data: []byte("x")}))

	recvCtx, cancel := context.WithCancel(ctx)
	c := make(chan *pubsub.Message, 1)
	go func() {
		_ = sub.Receive(recvCtx, func(_ context.Context, msg *pubsub.Message) {
			msg.Ack()
			c <- msg
			cancel()
		})
	}()
	msg := <-c

	assert.Equal(t, "0", msg.Attributes["delay_seconds"])
	assert.Equal(t, strconv.FormatInt(now.Unix(), 10), msg.Attributes["ready_at"])
	assert.NoError(t, publisher.Close())
}
