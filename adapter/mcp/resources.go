package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/queries"
	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
	"github.com/felixgeelhaar/mcp-go"
)

// RegisterResources registers MCP resources that expose plans and rankings.
func RegisterResources(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}
	app := deps.App

	// Today's plan: the cached snapshot, or a fresh one on a miss.
	srv.Resource("dayfocus://plan/today").
		Name("Today's Plan").
		Description("The daily plan generated for today").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if app == nil || app.GetDailyPlanHandler == nil {
				return nil, fmt.Errorf("planning requires database connection")
			}

			var payload any
			if app.GetCachedPlanHandler != nil {
				snapshot, err := app.GetCachedPlanHandler.Handle(ctx, queries.GetCachedPlanQuery{UserID: app.CurrentUserID})
				switch {
				case err == nil:
					payload = snapshot
				case !errors.Is(err, domain.ErrCacheMiss):
					return nil, err
				}
			}
			if payload == nil {
				result, err := app.GetDailyPlanHandler.Handle(ctx, queries.GetDailyPlanQuery{
					UserID:   app.CurrentUserID,
					MaxTasks: app.PlanMaxTasks,
				})
				if err != nil {
					return nil, err
				}
				payload = result.Plan
			}

			return jsonResource(uri, payload)
		})

	srv.Resource("dayfocus://tasks/ranked").
		Name("Ranked Tasks").
		Description("Pending tasks in priority order").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if app == nil || app.RankTasksHandler == nil {
				return nil, fmt.Errorf("ranking requires database connection")
			}

			result, err := app.RankTasksHandler.Handle(ctx, queries.RankTasksQuery{
				UserID: app.CurrentUserID,
				Limit:  app.RankLimit,
			})
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, result)
		})

	return nil
}

func jsonResource(uri string, v any) (*mcp.ResourceContent, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.ResourceContent{
		URI:      uri,
		MimeType: "application/json",
		Text:     string(data),
	}, nil
}
