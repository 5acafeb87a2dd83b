package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
	"github.com/felixgeelhaar/dayfocus/pkg/observability"
	"github.com/google/uuid"
)

// AddTaskCommand contains the data needed to add a task.
type AddTaskCommand struct {
	UserID           uuid.UUID
	Text             string
	Priority         string
	Category         string
	DueDate          string
	EstimatedMinutes int
	Importance       int
}

// AddTaskResult contains the result of adding a task.
type AddTaskResult struct {
	TaskID uuid.UUID
	Task   domain.Task
}

// AddTaskHandler handles the AddTaskCommand.
type AddTaskHandler struct {
	tasks   domain.TaskRepository
	clock   func() time.Time
	logger  *slog.Logger
	metrics observability.Metrics
}

// NewAddTaskHandler creates a new AddTaskHandler.
func NewAddTaskHandler(tasks domain.TaskRepository, clock func() time.Time, logger *slog.Logger, metrics observability.Metrics) *AddTaskHandler {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &AddTaskHandler{tasks: tasks, clock: clock, logger: logger, metrics: metrics}
}

// Handle executes the AddTaskCommand.
func (h *AddTaskHandler) Handle(ctx context.Context, cmd AddTaskCommand) (*AddTaskResult, error) {
	t, err := domain.NewTask(cmd.UserID, cmd.Text)
	if err != nil {
		return nil, err
	}

	if cmd.Priority != "" {
		priority, err := domain.ParsePriority(cmd.Priority)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, cmd.Priority)
		}
		t.Priority = priority
	}
	if cmd.Category != "" {
		t.Category = domain.NewCategory(cmd.Category)
	}
	if cmd.DueDate != "" {
		due := domain.Timestamp(cmd.DueDate)
		if _, ok := due.Parse(time.Local); !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDueDate, cmd.DueDate)
		}
		t.DueDate = due
	}
	if cmd.EstimatedMinutes > 0 {
		t.EstimatedMinutes = cmd.EstimatedMinutes
	}
	if cmd.Importance != 0 {
		if cmd.Importance < domain.MinImportance || cmd.Importance > domain.MaxImportance {
			return nil, fmt.Errorf("%w: %d", ErrInvalidImportance, cmd.Importance)
		}
		t.Importance = cmd.Importance
	}
	t.CreatedAt = domain.NewTimestamp(h.clock())

	if err := h.tasks.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	h.metrics.Counter(observability.MetricTasksAdded, 1)
	h.logger.InfoContext(ctx, "task added",
		"task_id", t.ID,
		"user_id", t.UserID,
		"category", t.Category,
	)

	return &AddTaskResult{TaskID: t.ID, Task: t}, nil
}
