package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
	"github.com/felixgeelhaar/dayfocus/pkg/observability"
	"github.com/google/uuid"
)

// DeleteTaskCommand contains the data needed to delete a task.
type DeleteTaskCommand struct {
	TaskID uuid.UUID
	UserID uuid.UUID
}

// DeleteTaskHandler handles the DeleteTaskCommand.
type DeleteTaskHandler struct {
	tasks   domain.TaskRepository
	logger  *slog.Logger
	metrics observability.Metrics
}

// NewDeleteTaskHandler creates a new DeleteTaskHandler.
func NewDeleteTaskHandler(tasks domain.TaskRepository, logger *slog.Logger, metrics observability.Metrics) *DeleteTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &DeleteTaskHandler{tasks: tasks, logger: logger, metrics: metrics}
}

// Handle executes the DeleteTaskCommand. The row is kept and flagged, and
// stops appearing in lists, rankings and plans.
func (h *DeleteTaskHandler) Handle(ctx context.Context, cmd DeleteTaskCommand) error {
	return observability.TimeOperation(ctx, h.logger, h.metrics, "delete_task", func() error {
		t, err := h.tasks.FindByID(ctx, cmd.TaskID)
		if err != nil {
			return fmt.Errorf("load task %s: %w", cmd.TaskID, err)
		}

		// Verify ownership
		if t.UserID != cmd.UserID {
			return fmt.Errorf("load task %s: %w", cmd.TaskID, domain.ErrTaskNotFound)
		}

		if err := h.tasks.Delete(ctx, cmd.TaskID); err != nil {
			return fmt.Errorf("delete task %s: %w", cmd.TaskID, err)
		}

		h.metrics.Counter(observability.MetricTasksDeleted, 1)
		h.logger.InfoContext(ctx, "task deleted", "task_id", cmd.TaskID, "user_id", cmd.UserID)
		return nil
	})
}
