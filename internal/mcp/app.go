package mcp

import (
	"github.com/felixgeelhaar/dayfocus/adapter/cli"
	"github.com/felixgeelhaar/dayfocus/internal/app"
)

// NewCLIApp creates a CLI application instance backed by the provided container.
func NewCLIApp(container *app.Container) *cli.App {
	cliApp := cli.NewApp(
		container.AddTaskHandler,
		container.CompleteTaskHandler,
		container.ToggleTaskHandler,
		container.DeleteTaskHandler,
		container.ListTasksHandler,
		container.RankTasksHandler,
		container.GetDailyPlanHandler,
		container.GetCachedPlanHandler,
		container.SuggestHandler,
		container.ExplainTaskHandler,
	)

	cliApp.SetCurrentUserID(container.UserID)
	if container.Config != nil {
		cliApp.SetLimits(container.Config.PlanMaxTasks, container.Config.RankLimit)
	}

	return cliApp
}
