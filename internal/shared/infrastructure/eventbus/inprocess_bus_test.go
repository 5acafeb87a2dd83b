package eventbus_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/dayfocus/internal/shared/infrastructure/eventbus"
)

func TestInProcessEventBus_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes the envelope and dispatches", func(t *testing.T) {
		bus := eventbus.NewInProcessEventBus(testLogger())
		consumer := &mockConsumer{eventTypes: []string{planGenerated}}
		bus.RegisterConsumer(consumer)

		payload, err := json.Marshal(map[string]any{
			"event_id":       uuid.New(),
			"aggregate_type": "DailyPlan",
			"routing_key":    planGenerated,
			"occurred_at":    time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC),
			"correlation_id": "corr-7",
			"payload":        map[string]any{"total_minutes": 160},
		})
		require.NoError(t, err)

		require.NoError(t, bus.Publish(ctx, planGenerated, payload))

		require.Len(t, consumer.events, 1)
		event := consumer.events[0]
		assert.Equal(t, "DailyPlan", event.AggregateType)
		assert.Equal(t, "corr-7", event.CorrelationID)
		assert.JSONEq(t, `{"total_minutes":160}`, string(event.Payload))
	})

	t.Run("routing key falls back to the publish key", func(t *testing.T) {
		bus := eventbus.NewInProcessEventBus(testLogger())
		consumer := &mockConsumer{eventTypes: []string{planGenerated}}
		bus.RegisterConsumer(consumer)

		require.NoError(t, bus.Publish(ctx, planGenerated, []byte(`{"event_id":"`+uuid.NewString()+`"}`)))

		require.Len(t, consumer.events, 1)
		assert.Equal(t, planGenerated, consumer.events[0].RoutingKey)
	})

	t.Run("bad payloads and failing consumers are swallowed", func(t *testing.T) {
		bus := eventbus.NewInProcessEventBus(testLogger())
		consumer := &mockConsumer{eventTypes: []string{planGenerated}, err: errors.New("boom")}
		bus.RegisterConsumer(consumer)

		assert.NoError(t, bus.Publish(ctx, planGenerated, []byte("not json")))
		assert.Empty(t, consumer.events)

		assert.NoError(t, bus.Publish(ctx, planGenerated, []byte(`{}`)))
		assert.Len(t, consumer.events, 1)
	})

	assert.NoError(t, eventbus.NewInProcessEventBus(nil).Close())
}

func TestNoopPublisher(t *testing.T) {
	p := eventbus.NewNoopPublisher(nil)
	assert.NoError(t, p.Publish(context.Background(), planGenerated, []byte(`{}`)))
	assert.NoError(t, p.Close())
}
