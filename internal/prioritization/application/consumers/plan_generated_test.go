package consumers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
	"github.com/felixgeelhaar/dayfocus/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/dayfocus/pkg/observability"
)

func TestPlanGeneratedConsumer_ThroughInProcessBus(t *testing.T) {
	metrics := observability.NewInMemoryMetrics()
	bus := eventbus.NewInProcessEventBus(nil)
	bus.RegisterConsumer(NewPlanGeneratedConsumer(nil, metrics))

	snapshot := domain.PlanSnapshot{
		UserID:       uuid.New(),
		Date:         "2025-06-10",
		GeneratedAt:  time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC),
		MorningFocus: []domain.PlannedTask{{Text: "budget", Minutes: 90}},
		QuickWins:    []domain.PlannedTask{{Text: "bill", Minutes: 10}, {Text: "emails", Minutes: 15}},
		TotalMinutes: 115,
	}
	payload, err := json.Marshal(domain.NewPlanGenerated(snapshot, "corr-1"))
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(), domain.RoutingKeyPlanGenerated, payload))

	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricEventsConsumed,
		observability.T("routing_key", domain.RoutingKeyPlanGenerated)))
	assert.Equal(t, []float64{90}, metrics.GetHistogram(observability.MetricPlanPlacedMinutes, observability.T("bucket", "morning_focus")))
	assert.Equal(t, []float64{25}, metrics.GetHistogram(observability.MetricPlanPlacedMinutes, observability.T("bucket", "quick_wins")))
	assert.Equal(t, []float64{0}, metrics.GetHistogram(observability.MetricPlanPlacedMinutes, observability.T("bucket", "afternoon")))
}

func TestPlanGeneratedConsumer_BadPayload(t *testing.T) {
	c := NewPlanGeneratedConsumer(nil, nil)

	err := c.Handle(context.Background(), &eventbus.ConsumedEvent{Payload: json.RawMessage(`"nope"`)})

	assert.Error(t, err)
	assert.Equal(t, []string{domain.RoutingKeyPlanGenerated}, c.EventTypes())
}
