package queries

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/services"
	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
	"github.com/felixgeelhaar/dayfocus/pkg/observability"
	"github.com/google/uuid"
)

// RankTasksQuery asks for a user's pending tasks in priority order.
type RankTasksQuery struct {
	UserID uuid.UUID
	Limit  int // 0 = all
}

// RankTasksResult is the ordered task list.
type RankTasksResult struct {
	Tasks        []RankedTaskDTO `json:"tasks"`
	TotalPending int             `json:"total_pending"`
	GeneratedAt  time.Time       `json:"generated_at"`
}

// RankTasksHandler handles the RankTasksQuery.
type RankTasksHandler struct {
	tasks   domain.TaskReader
	engine  *services.PriorityEngine
	clock   Clock
	logger  *slog.Logger
	metrics observability.Metrics
}

// NewRankTasksHandler creates a new RankTasksHandler.
func NewRankTasksHandler(
	tasks domain.TaskReader,
	engine *services.PriorityEngine,
	clock Clock,
	logger *slog.Logger,
	metrics observability.Metrics,
) *RankTasksHandler {
	if engine == nil {
		engine = services.NewDefaultPriorityEngine()
	}
	return &RankTasksHandler{
		tasks:   tasks,
		engine:  engine,
		clock:   defaultClock(clock),
		logger:  defaultLogger(logger),
		metrics: defaultMetrics(metrics),
	}
}

// Handle executes the RankTasksQuery.
func (h *RankTasksHandler) Handle(ctx context.Context, query RankTasksQuery) (*RankTasksResult, error) {
	return observability.TimeOperationResult(ctx, h.logger, h.metrics, "rank_tasks", func() (*RankTasksResult, error) {
		pending, err := h.tasks.FindPending(ctx, query.UserID)
		if err != nil {
			return nil, fmt.Errorf("load pending tasks: %w", err)
		}

		now := h.clock()
		ranked := h.engine.Rank(pending, now)
		h.metrics.Counter(observability.MetricTasksRanked, int64(len(ranked)))

		h.logger.DebugContext(ctx, "tasks ranked",
			"user_id", query.UserID,
			"count", len(ranked),
		)

		return &RankTasksResult{
			Tasks:        toRankedDTOs(ranked, query.Limit),
			TotalPending: len(pending),
			GeneratedAt:  now,
		}, nil
	})
}
