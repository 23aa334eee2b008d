package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/queue"
)

func TestPublishRecordsInOrder(t *testing.T) {
	t.Parallel()
	p := New()

	require.NoError(t, p.Publish(context.Background(), queue.Message{Data: []byte("a")}))
	require.NoError(t, p.Publish(context.Background(), queue.Message{Data: []byte("b")}))

	msgs := p.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "a", string(msgs[0].Message.Data))
	assert.Equal(t, "b", string(msgs[1].Message.Data))
	assert.False(t, msgs[0].SentAt.After(msgs[1].SentAt))
}

func TestFailWithDropsMessage(t *testing.T) {
	t.Parallel()
	p := New()
	p.FailWith(func(msg queue.Message) error {
		if string(msg.Data) == "bad" {
			return errors.New("broker unavailable")
		}
		return nil
	})

	require.NoError(t, p.Publish(context.Background(), queue.Message{Data: []byte("ok")}))
	err := p.Publish(context.Background(), queue.Message{Data: []byte("bad")})
	require.Error(t, err)

	// Failed sends are not recorded.
	require.Len(t, p.Messages(), 1)
	assert.Equal(t, "ok", string(p.Messages()[0].Message.Data))
}

func TestMessagesReturnsCopy(t *testing.T) {
	t.Parallel()
	p := New()
	require.NoError(t, p.Publish(context.Background(), queue.Message{Data: []byte("a")}))

	msgs := p.Messages()
	msgs[0].Message.Data = []byte("mutated")
	assert.Equal(t, "a", string(p.Messages()[0].Message.Data))
}
