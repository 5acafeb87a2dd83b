package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/services"
	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
	"github.com/felixgeelhaar/dayfocus/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/dayfocus/pkg/observability"
	"github.com/google/uuid"
)

// DefaultPlanCacheTTL is how long a generated plan snapshot is kept.
const DefaultPlanCacheTTL = 12 * time.Hour

// GetDailyPlanQuery asks for today's plan.
type GetDailyPlanQuery struct {
	UserID   uuid.UUID
	MaxTasks int // 0 = services.DefaultMaxTasks
}

// GetDailyPlanResult is a freshly built plan plus the top of the ranking.
type GetDailyPlanResult struct {
	Plan       domain.PlanSnapshot `json:"plan"`
	TotalHours float64             `json:"total_hours"`
	TopTasks   []RankedTaskDTO     `json:"top_tasks"`
}

// PlanCollaborators are the optional outlets of a generated plan. A nil cache
// or publisher is skipped.
type PlanCollaborators struct {
	Cache     domain.PlanCache
	Publisher eventbus.Publisher
	CacheTTL  time.Duration
}

// GetDailyPlanHandler handles the GetDailyPlanQuery.
type GetDailyPlanHandler struct {
	tasks   domain.TaskReader
	builder *services.PlanBuilder
	outlets PlanCollaborators
	clock   Clock
	logger  *slog.Logger
	metrics observability.Metrics
}

// NewGetDailyPlanHandler creates a new GetDailyPlanHandler.
func NewGetDailyPlanHandler(
	tasks domain.TaskReader,
	builder *services.PlanBuilder,
	outlets PlanCollaborators,
	clock Clock,
	logger *slog.Logger,
	metrics observability.Metrics,
) *GetDailyPlanHandler {
	if builder == nil {
		builder = services.NewPlanBuilder(nil)
	}
	if outlets.CacheTTL <= 0 {
		outlets.CacheTTL = DefaultPlanCacheTTL
	}
	return &GetDailyPlanHandler{
		tasks:   tasks,
		builder: builder,
		outlets: outlets,
		clock:   defaultClock(clock),
		logger:  defaultLogger(logger),
		metrics: defaultMetrics(metrics),
	}
}

// Handle executes the GetDailyPlanQuery. Cache and publisher failures are
// logged; the plan is still returned.
func (h *GetDailyPlanHandler) Handle(ctx context.Context, query GetDailyPlanQuery) (*GetDailyPlanResult, error) {
	return observability.TimeOperationResult(ctx, h.logger, h.metrics, "daily_plan", func() (*GetDailyPlanResult, error) {
		pending, err := h.tasks.FindPending(ctx, query.UserID)
		if err != nil {
			return nil, fmt.Errorf("load pending tasks: %w", err)
		}

		now := h.clock()
		plan, top := h.builder.Build(pending, query.MaxTasks, now)
		snapshot := domain.NewPlanSnapshot(query.UserID, plan, now)

		h.metrics.Counter(observability.MetricPlansGenerated, 1)
		h.metrics.Gauge(observability.MetricPlanPlacedMinutes, float64(plan.TotalMinutes))
		h.metrics.Histogram(observability.MetricPlanPlacedTasks, float64(len(plan.Placed())))

		h.logger.InfoContext(ctx, "daily plan generated",
			"user_id", query.UserID,
			"pending", len(pending),
			"placed", len(plan.Placed()),
			"total_minutes", plan.TotalMinutes,
		)

		if plan.IsEmpty() && len(pending) > 0 {
			h.logger.InfoContext(ctx, "no pending task fits a plan bucket",
				"user_id", query.UserID,
				"pending", len(pending),
			)
		}

		h.store(ctx, snapshot)
		h.publish(ctx, snapshot)

		return &GetDailyPlanResult{
			Plan:       snapshot,
			TotalHours: plan.TotalHours(),
			TopTasks:   toRankedDTOs(top, 0),
		}, nil
	})
}

func (h *GetDailyPlanHandler) store(ctx context.Context, snapshot domain.PlanSnapshot) {
	if h.outlets.Cache == nil {
		return
	}
	if err := h.outlets.Cache.Put(ctx, snapshot, h.outlets.CacheTTL); err != nil {
		h.metrics.Counter(observability.MetricCacheErrors, 1, observability.T("op", "put"))
		h.logger.WarnContext(ctx, "failed to cache plan snapshot",
			"user_id", snapshot.UserID,
			"error", err,
		)
	}
}

func (h *GetDailyPlanHandler) publish(ctx context.Context, snapshot domain.PlanSnapshot) {
	if h.outlets.Publisher == nil {
		return
	}

	event := domain.NewPlanGenerated(snapshot, observability.CorrelationIDFromContext(ctx))
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to encode plan event", "error", err)
		return
	}

	if err := h.outlets.Publisher.Publish(ctx, event.RoutingKey, payload); err != nil {
		h.logger.WarnContext(ctx, "failed to publish plan event",
			"event_id", event.EventID,
			"error", err,
		)
		return
	}
	h.metrics.Counter(observability.MetricEventsPublished, 1, observability.T("routing_key", event.RoutingKey))
}
