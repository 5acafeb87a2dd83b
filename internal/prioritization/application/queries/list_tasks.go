package queries

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
	"github.com/felixgeelhaar/dayfocus/pkg/observability"
	"github.com/google/uuid"
)

// TaskDTO is a stored task as listed to users, unscored.
type TaskDTO struct {
	ID               uuid.UUID `json:"id"`
	Text             string    `json:"text"`
	Priority         string    `json:"priority"`
	Category         string    `json:"category"`
	DueDate          string    `json:"due_date,omitempty"`
	EstimatedMinutes int       `json:"estimated_minutes"`
	Importance       int       `json:"importance"`
	Completed        bool      `json:"completed"`
	CompletedAt      string    `json:"completed_at,omitempty"`
	CreatedAt        string    `json:"created_at,omitempty"`
}

// ListTasksQuery asks for every task a user has not deleted.
type ListTasksQuery struct {
	UserID      uuid.UUID
	IncludeDone    bool
}

// ListTasksResult holds the tasks in the order they were added.
type ListTasksResult struct {
	Tasks     []TaskDTO `json:"tasks"`
	Pending   int       `json:"pending"`
	Completed int       `json:"completed"`
}

// ListTasksHandler handles the ListTasksQuery.
type ListTasksHandler struct {
	tasks   domain.TaskLister
	logger  *slog.Logger
	metrics observability.Metrics
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(tasks domain.TaskLister, logger *slog.Logger, metrics observability.Metrics) *ListTasksHandler {
	return &ListTasksHandler{
		tasks:   tasks,
		logger:  defaultLogger(logger),
		metrics: defaultMetrics(metrics),
	}
}

// Handle executes the ListTasksQuery. The counts cover every task, also
// when completed ones are filtered out of Tasks.
func (h *ListTasksHandler) Handle(ctx context.Context, query ListTasksQuery) (*ListTasksResult, error) {
	return observability.TimeOperationResult(ctx, h.logger, h.metrics, "list_tasks", func() (*ListTasksResult, error) {
		all, err := h.tasks.FindAll(ctx, query.UserID)
		if err != nil {
			return nil, fmt.Errorf("load tasks: %w", err)
		}

		result := &ListTasksResult{Tasks: make([]TaskDTO, 0, len(all))}
		for _, t := range all {
			if t.Completed {
				result.Completed++
				if !query.IncludeDone {
					continue
				}
			} else {
				result.Pending++
			}
			result.Tasks = append(result.Tasks, toTaskDTO(t))
		}
		return result, nil
	})
}

func toTaskDTO(t domain.Task) TaskDTO {
	return TaskDTO{
		ID:               t.ID,
		Text:             t.Text,
		Priority:         t.EffectivePriority().String(),
		Category:         t.EffectiveCategory().String(),
		DueDate:          string(t.DueDate),
		EstimatedMinutes: t.Minutes(),
		Importance:       t.EffectiveImportance(),
		Completed:        t.Completed,
		CompletedAt:      string(t.CompletedAt),
		CreatedAt:        string(t.CreatedAt),
	}
}
