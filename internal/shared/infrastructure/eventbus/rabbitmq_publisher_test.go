package eventbus

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/dayfocus/pkg/observability"
)

type publishedMessage struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	published []publishedMessage
	err       error
	closed    bool
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if c.err != nil {
		return c.err
	}
	c.published = append(c.published, publishedMessage{exchange: exchange, key: key, msg: msg})
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

func newTestPublisher(ch *fakeChannel) *RabbitMQPublisher {
	return &RabbitMQPublisher{
		channel:  ch,
		exchange: ExchangeName,
		logger:   slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})),
	}
}

func TestRabbitMQPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := newTestPublisher(ch)
	ctx := observability.WithCorrelationID(context.Background(), "corr-1")

	require.NoError(t, p.Publish(ctx, "dayfocus.plan.generated", []byte(`{"ok":true}`)))

	require.Len(t, ch.published, 1)
	got := ch.published[0]
	assert.Equal(t, "dayfocus.events", got.exchange)
	assert.Equal(t, "dayfocus.plan.generated", got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)
	assert.Equal(t, "corr-1", got.msg.CorrelationId)
	assert.JSONEq(t, `{"ok":true}`, string(got.msg.Body))
}

func TestRabbitMQPublisher_PublishError(t *testing.T) {
	boom := errors.New("channel closed")
	p := newTestPublisher(&fakeChannel{err: boom})

	err := p.Publish(context.Background(), "dayfocus.plan.generated", nil)

	assert.ErrorIs(t, err, boom)
}

func TestRabbitMQPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	p := newTestPublisher(ch)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}
