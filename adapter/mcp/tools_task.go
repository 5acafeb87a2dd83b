package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/commands"
	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/queries"
	"github.com/felixgeelhaar/mcp-go"
)

type taskAddInput struct {
	Text             string `json:"text" jsonschema:"required"`
	Priority         string `json:"priority,omitempty"`
	Category         string `json:"category,omitempty"`
	DueDate          string `json:"due_date,omitempty"`
	EstimatedMinutes int    `json:"estimated_minutes,omitempty"`
	Importance       int    `json:"importance,omitempty"`
}

type taskIDInput struct {
	TaskID string `json:"task_id" jsonschema:"required"`
}

type taskListInput struct {
	IncludeCompleted bool `json:"include_completed,omitempty"`
}

func registerTaskTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("tasks.add").
		Description("Add a task with optional priority, category, due date, estimate and importance").
		Handler(func(ctx context.Context, input taskAddInput) (map[string]any, error) {
			ctx = toolContext(ctx, app, "tasks.add")
			if app == nil || app.AddTaskHandler == nil {
				return nil, errors.New("adding tasks requires database connection")
			}
			result, err := app.AddTaskHandler.Handle(ctx, commands.AddTaskCommand{
				UserID:           app.CurrentUserID,
				Text:             input.Text,
				Priority:         input.Priority,
				Category:         input.Category,
				DueDate:          input.DueDate,
				EstimatedMinutes: input.EstimatedMinutes,
				Importance:       input.Importance,
			})
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"task_id": result.TaskID.String(),
				"task":    result.Task,
			}, nil
		})

	srv.Tool("tasks.complete").
		Description("Mark a task as completed").
		Handler(func(ctx context.Context, input taskIDInput) (map[string]any, error) {
			ctx = toolContext(ctx, app, "tasks.complete")
			if app == nil || app.CompleteTaskHandler == nil {
				return nil, errors.New("task completion requires database connection")
			}
			taskID, err := parseUUID(input.TaskID)
			if err != nil {
				return nil, err
			}

			if err := app.CompleteTaskHandler.Handle(ctx, commands.CompleteTaskCommand{
				TaskID: taskID,
				UserID: app.CurrentUserID,
			}); err != nil {
				return nil, err
			}
			return map[string]any{"task_id": taskID.String(), "status": "completed"}, nil
		})

	srv.Tool("tasks.toggle").
		Description("Flip a task between pending and completed; reopens a task completed by mistake").
		Handler(func(ctx context.Context, input taskIDInput) (*commands.ToggleTaskResult, error) {
			ctx = toolContext(ctx, app, "tasks.toggle")
			if app == nil || app.ToggleTaskHandler == nil {
				return nil, errors.New("task toggle requires database connection")
			}
			taskID, err := parseUUID(input.TaskID)
			if err != nil {
				return nil, err
			}
			return app.ToggleTaskHandler.Handle(ctx, commands.ToggleTaskCommand{
				TaskID: taskID,
				UserID: app.CurrentUserID,
			})
		})

	srv.Tool("tasks.delete").
		Description("Delete a task so it no longer appears in lists, rankings or plans").
		Handler(func(ctx context.Context, input taskIDInput) (map[string]any, error) {
			ctx = toolContext(ctx, app, "tasks.delete")
			if app == nil || app.DeleteTaskHandler == nil {
				return nil, errors.New("task deletion requires database connection")
			}
			taskID, err := parseUUID(input.TaskID)
			if err != nil {
				return nil, err
			}

			if err := app.DeleteTaskHandler.Handle(ctx, commands.DeleteTaskCommand{
				TaskID: taskID,
				UserID: app.CurrentUserID,
			}); err != nil {
				return nil, err
			}
			return map[string]any{"task_id": taskID.String(), "status": "deleted"}, nil
		})

	srv.Tool("tasks.list").
		Description("List tasks in the order they were added, optionally including completed ones").
		Handler(func(ctx context.Context, input taskListInput) (*queries.ListTasksResult, error) {
			ctx = toolContext(ctx, app, "tasks.list")
			if app == nil || app.ListTasksHandler == nil {
				return nil, errors.New("listing tasks requires database connection")
			}
			return app.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{
				UserID:      app.CurrentUserID,
				IncludeDone: input.IncludeCompleted,
			})
		})

	return nil
}
