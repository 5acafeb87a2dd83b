package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
	"github.com/felixgeelhaar/dayfocus/pkg/observability"
	"github.com/google/uuid"
)

// ToggleTaskCommand flips a task between pending and completed.
type ToggleTaskCommand struct {
	TaskID uuid.UUID
	UserID uuid.UUID
}

// ToggleTaskResult reports the state the task ended up in.
type ToggleTaskResult struct {
	TaskID    uuid.UUID `json:"task_id"`
	Completed bool      `json:"completed"`
}

// ToggleTaskHandler handles the ToggleTaskCommand.
type ToggleTaskHandler struct {
	tasks   domain.TaskRepository
	logger  *slog.Logger
	metrics observability.Metrics
}

// NewToggleTaskHandler creates a new ToggleTaskHandler.
func NewToggleTaskHandler(tasks domain.TaskRepository, logger *slog.Logger, metrics observability.Metrics) *ToggleTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &ToggleTaskHandler{tasks: tasks, logger: logger, metrics: metrics}
}

// Handle executes the ToggleTaskCommand. A reopened task rejoins the ranking
// with its original creation time, so aging keeps counting.
func (h *ToggleTaskHandler) Handle(ctx context.Context, cmd ToggleTaskCommand) (*ToggleTaskResult, error) {
	t, err := h.tasks.FindByID(ctx, cmd.TaskID)
	if err != nil {
		return nil, fmt.Errorf("load task %s: %w", cmd.TaskID, err)
	}
	if t.UserID != cmd.UserID {
		return nil, fmt.Errorf("load task %s: %w", cmd.TaskID, domain.ErrTaskNotFound)
	}

	completed := !t.Completed
	if err := h.tasks.SetCompleted(ctx, cmd.TaskID, completed); err != nil {
		return nil, fmt.Errorf("toggle task %s: %w", cmd.TaskID, err)
	}

	if completed {
		h.metrics.Counter(observability.MetricTasksCompleted, 1)
	} else {
		h.metrics.Counter(observability.MetricTasksReopened, 1)
	}
	h.logger.InfoContext(ctx, "task toggled", "task_id", cmd.TaskID, "completed", completed)

	return &ToggleTaskResult{TaskID: cmd.TaskID, Completed: completed}, nil
}
