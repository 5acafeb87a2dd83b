// Package consumers reacts to events published by the prioritization
// handlers.
package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
	"github.com/felixgeelhaar/dayfocus/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/dayfocus/pkg/observability"
)

// PlanGeneratedConsumer records every generated plan: it logs the plan's
// shape and feeds the placed-minutes metric per bucket.
type PlanGeneratedConsumer struct {
	logger  *slog.Logger
	metrics observability.Metrics
}

// NewPlanGeneratedConsumer creates a consumer for plan.generated events.
func NewPlanGeneratedConsumer(logger *slog.Logger, metrics observability.Metrics) *PlanGeneratedConsumer {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &PlanGeneratedConsumer{logger: logger, metrics: metrics}
}

// EventTypes implements eventbus.EventConsumer.
func (c *PlanGeneratedConsumer) EventTypes() []string {
	return []string{domain.RoutingKeyPlanGenerated}
}

// Handle implements eventbus.EventConsumer.
func (c *PlanGeneratedConsumer) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	var snapshot domain.PlanSnapshot
	if err := json.Unmarshal(event.Payload, &snapshot); err != nil {
		return fmt.Errorf("decode plan snapshot: %w", err)
	}

	c.metrics.Counter(observability.MetricEventsConsumed, 1, observability.T("routing_key", event.RoutingKey))
	for bucket, tasks := range map[string][]domain.PlannedTask{
		"morning_focus": snapshot.MorningFocus,
		"quick_wins":    snapshot.QuickWins,
		"afternoon":     snapshot.Afternoon,
	} {
		c.metrics.Histogram(observability.MetricPlanPlacedMinutes, float64(sumMinutes(tasks)), observability.T("bucket", bucket))
	}

	c.logger.InfoContext(ctx, "plan recorded",
		"event_id", event.EventID,
		"user_id", snapshot.UserID,
		"date", snapshot.Date,
		"morning_focus", len(snapshot.MorningFocus),
		"quick_wins", len(snapshot.QuickWins),
		"afternoon", len(snapshot.Afternoon),
		"total_minutes", snapshot.TotalMinutes,
	)
	return nil
}

func sumMinutes(tasks []domain.PlannedTask) int {
	total := 0
	for _, t := range tasks {
		total += t.Minutes
	}
	return total
}
