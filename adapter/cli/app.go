package cli

import (
	"errors"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/commands"
	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/queries"
)

// ErrNotInitialized is returned by commands run without a wired App.
var ErrNotInitialized = errors.New("application not initialized - database connection required")

// App holds the CLI application dependencies.
type App struct {
	// Command Handlers
	AddTaskHandler      *commands.AddTaskHandler
	CompleteTaskHandler *commands.CompleteTaskHandler
	ToggleTaskHandler   *commands.ToggleTaskHandler
	DeleteTaskHandler   *commands.DeleteTaskHandler

	// Query Handlers
	ListTasksHandler     *queries.ListTasksHandler
	RankTasksHandler     *queries.RankTasksHandler
	GetDailyPlanHandler  *queries.GetDailyPlanHandler
	GetCachedPlanHandler *queries.GetCachedPlanHandler
	SuggestHandler       *queries.SuggestHandler
	ExplainTaskHandler   *queries.ExplainTaskHandler

	// Current user (configured per environment)
	CurrentUserID uuid.UUID

	// Defaults for plan size and ranking length
	PlanMaxTasks int
	RankLimit    int
}

// NewApp creates a new CLI application with the provided handlers.
func NewApp(
	addTaskHandler *commands.AddTaskHandler,
	completeTaskHandler *commands.CompleteTaskHandler,
	toggleTaskHandler *commands.ToggleTaskHandler,
	deleteTaskHandler *commands.DeleteTaskHandler,
	listTasksHandler *queries.ListTasksHandler,
	rankTasksHandler *queries.RankTasksHandler,
	getDailyPlanHandler *queries.GetDailyPlanHandler,
	getCachedPlanHandler *queries.GetCachedPlanHandler,
	suggestHandler *queries.SuggestHandler,
	explainTaskHandler *queries.ExplainTaskHandler,
) *App {
	return &App{
		AddTaskHandler:       addTaskHandler,
		CompleteTaskHandler:  completeTaskHandler,
		ToggleTaskHandler:    toggleTaskHandler,
		DeleteTaskHandler:    deleteTaskHandler,
		ListTasksHandler:     listTasksHandler,
		RankTasksHandler:     rankTasksHandler,
		GetDailyPlanHandler:  getDailyPlanHandler,
		GetCachedPlanHandler: getCachedPlanHandler,
		SuggestHandler:       suggestHandler,
		ExplainTaskHandler:   explainTaskHandler,
	}
}

// SetCurrentUserID sets the user every command acts for.
func (a *App) SetCurrentUserID(id uuid.UUID) {
	a.CurrentUserID = id
}

// SetLimits sets the default plan size and ranking length.
func (a *App) SetLimits(planMaxTasks, rankLimit int) {
	a.PlanMaxTasks = planMaxTasks
	a.RankLimit = rankLimit
}

var app *App

// SetApp sets the global CLI app instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI app instance.
func GetApp() *App {
	return app
}
