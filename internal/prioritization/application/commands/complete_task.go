package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
	"github.com/felixgeelhaar/dayfocus/pkg/observability"
	"github.com/google/uuid"
)

// CompleteTaskCommand contains the data needed to complete a task.
type CompleteTaskCommand struct {
	TaskID uuid.UUID
	UserID uuid.UUID
}

// CompleteTaskHandler handles the CompleteTaskCommand.
type CompleteTaskHandler struct {
	tasks   domain.TaskRepository
	logger  *slog.Logger
	metrics observability.Metrics
}

// NewCompleteTaskHandler creates a new CompleteTaskHandler.
func NewCompleteTaskHandler(tasks domain.TaskRepository, logger *slog.Logger, metrics observability.Metrics) *CompleteTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &CompleteTaskHandler{tasks: tasks, logger: logger, metrics: metrics}
}

// Handle executes the CompleteTaskCommand. Completed tasks drop out of every
// later ranking.
func (h *CompleteTaskHandler) Handle(ctx context.Context, cmd CompleteTaskCommand) error {
	return observability.TimeOperation(ctx, h.logger, h.metrics, "complete_task", func() error {
		t, err := h.tasks.FindByID(ctx, cmd.TaskID)
		if err != nil {
			return fmt.Errorf("load task %s: %w", cmd.TaskID, err)
		}

		// Verify ownership
		if t.UserID != cmd.UserID {
			return fmt.Errorf("load task %s: %w", cmd.TaskID, domain.ErrTaskNotFound)
		}

		if err := h.tasks.SetCompleted(ctx, cmd.TaskID, true); err != nil {
			return fmt.Errorf("complete task %s: %w", cmd.TaskID, err)
		}

		h.metrics.Counter(observability.MetricTasksCompleted, 1)
		h.logger.InfoContext(ctx, "task completed", "task_id", cmd.TaskID, "user_id", cmd.UserID)
		return nil
	})
}
