package queries

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/services"
	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
	"github.com/google/uuid"
)

// ExplainTaskQuery asks why a task scores the way it does.
type ExplainTaskQuery struct {
	TaskID uuid.UUID
	UserID uuid.UUID
}

// ExplainTaskResult pairs the task with its score breakdown.
type ExplainTaskResult struct {
	Task        domain.Task           `json:"task"`
	Explanation *services.Explanation `json:"explanation"`
}

// ExplainTaskHandler handles the ExplainTaskQuery.
type ExplainTaskHandler struct {
	tasks  domain.TaskReader
	engine *services.PriorityEngine
	clock  Clock
}

// NewExplainTaskHandler creates a new ExplainTaskHandler.
func NewExplainTaskHandler(tasks domain.TaskReader, engine *services.PriorityEngine, clock Clock) *ExplainTaskHandler {
	if engine == nil {
		engine = services.NewDefaultPriorityEngine()
	}
	return &ExplainTaskHandler{tasks: tasks, engine: engine, clock: defaultClock(clock)}
}

// Handle executes the ExplainTaskQuery. A task owned by another user is
// reported as not found.
func (h *ExplainTaskHandler) Handle(ctx context.Context, query ExplainTaskQuery) (*ExplainTaskResult, error) {
	task, err := h.tasks.FindByID(ctx, query.TaskID)
	if err != nil {
		return nil, fmt.Errorf("load task %s: %w", query.TaskID, err)
	}
	if query.UserID != uuid.Nil && task.UserID != query.UserID {
		return nil, fmt.Errorf("load task %s: %w", query.TaskID, domain.ErrTaskNotFound)
	}

	return &ExplainTaskResult{
		Task:        *task,
		Explanation: h.engine.Explain(*task, h.clock()),
	}, nil
}
