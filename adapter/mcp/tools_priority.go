package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/queries"
	"github.com/felixgeelhaar/mcp-go"
)

type rankInput struct {
	Limit int `json:"limit,omitempty"`
}

type planInput struct {
	MaxTasks int `json:"max_tasks,omitempty"`
}

type suggestInput struct {
	Limit    int `json:"limit,omitempty"`
	MaxTasks int `json:"max_tasks,omitempty"`
}

type explainInput struct {
	TaskID string `json:"task_id" jsonschema:"required"`
}

func registerPriorityTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("priority.rank").
		Description("Rank pending tasks by priority score, highest first").
		Handler(func(ctx context.Context, input rankInput) (*queries.RankTasksResult, error) {
			ctx = toolContext(ctx, app, "priority.rank")
			if app == nil || app.RankTasksHandler == nil {
				return nil, errors.New("ranking requires database connection")
			}
			return app.RankTasksHandler.Handle(ctx, queries.RankTasksQuery{
				UserID: app.CurrentUserID,
				Limit:  orDefault(input.Limit, app.RankLimit),
			})
		})

	srv.Tool("plan.daily").
		Description("Build today's plan: morning focus, quick wins and afternoon tasks").
		Handler(func(ctx context.Context, input planInput) (*queries.GetDailyPlanResult, error) {
			ctx = toolContext(ctx, app, "plan.daily")
			if app == nil || app.GetDailyPlanHandler == nil {
				return nil, errors.New("planning requires database connection")
			}
			return app.GetDailyPlanHandler.Handle(ctx, queries.GetDailyPlanQuery{
				UserID:   app.CurrentUserID,
				MaxTasks: orDefault(input.MaxTasks, app.PlanMaxTasks),
			})
		})

	srv.Tool("priority.suggest").
		Description("Suggest the single task to start with now").
		Handler(func(ctx context.Context, input suggestInput) (*queries.SuggestResult, error) {
			ctx = toolContext(ctx, app, "priority.suggest")
			if app == nil || app.SuggestHandler == nil {
				return nil, errors.New("suggestions require database connection")
			}
			return app.SuggestHandler.Handle(ctx, queries.SuggestQuery{
				UserID:    app.CurrentUserID,
				RankLimit: orDefault(input.Limit, app.RankLimit),
				MaxTasks:  input.MaxTasks,
			})
		})

	srv.Tool("priority.explain").
		Description("Explain the score breakdown of a task").
		Handler(func(ctx context.Context, input explainInput) (*queries.ExplainTaskResult, error) {
			ctx = toolContext(ctx, app, "priority.explain")
			if app == nil || app.ExplainTaskHandler == nil {
				return nil, errors.New("explain requires database connection")
			}
			taskID, err := parseUUID(input.TaskID)
			if err != nil {
				return nil, err
			}
			return app.ExplainTaskHandler.Handle(ctx, queries.ExplainTaskQuery{
				TaskID: taskID,
				UserID: app.CurrentUserID,
			})
		})

	return nil
}
