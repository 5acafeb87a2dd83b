package task

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/dayfocus/adapter/cli"
	internalApp "github.com/felixgeelhaar/dayfocus/internal/app"
	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/commands"
	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/queries"
	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
	"github.com/felixgeelhaar/dayfocus/pkg/config"
)

// setupLocalModeTestApp creates a test application with SQLite.
func setupLocalModeTestApp(t *testing.T) *cli.App {
	t.Helper()

	cfg := &config.Config{
		AppEnv:       "test",
		UserID:       config.DefaultUserID,
		SQLitePath:   filepath.Join(t.TempDir(), "test.db"),
		PlanCacheTTL: time.Hour,
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	container, err := internalApp.NewContainer(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(container.Close)

	app := cli.NewApp(
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
	app.SetCurrentUserID(container.UserID)

	cli.SetApp(app)
	t.Cleanup(func() { cli.SetApp(nil) })
	return app
}

func resetAddFlags() {
	priority = ""
	category = ""
	dueDate = ""
	minutes = 0
	importance = 0
}

func pending(t *testing.T, app *cli.App) []queries.RankedTaskDTO {
	t.Helper()
	result, err := app.RankTasksHandler.Handle(context.Background(), queries.RankTasksQuery{UserID: app.CurrentUserID})
	require.NoError(t, err)
	return result.Tasks
}

func TestAddCmd_AddsTask(t *testing.T) {
	app := setupLocalModeTestApp(t)
	resetAddFlags()
	priority = "high"
	category = "Finance"
	minutes = 90
	importance = 5
	dueDate = "2025-06-10T17:00"

	var out bytes.Buffer
	addCmd.SetContext(context.Background())
	addCmd.SetOut(&out)

	require.NoError(t, addCmd.RunE(addCmd, []string{"Prepare quarterly budget"}))
	assert.Contains(t, out.String(), "Task added: ")
	assert.Contains(t, out.String(), "priority: high, category: finance, 90 min, importance 5")
	assert.Contains(t, out.String(), "due: 2025-06-10T17:00")

	tasks := pending(t, app)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Prepare quarterly budget", tasks[0].Text)
	assert.Equal(t, "high", tasks[0].Priority)
	assert.Equal(t, "finance", tasks[0].Category)
	assert.Equal(t, 90, tasks[0].EstimatedMinutes)
	assert.Equal(t, 5, tasks[0].Importance)
}

func TestAddCmd_Defaults(t *testing.T) {
	app := setupLocalModeTestApp(t)
	resetAddFlags()

	addCmd.SetContext(context.Background())
	addCmd.SetOut(&bytes.Buffer{})
	require.NoError(t, addCmd.RunE(addCmd, []string{"Water plants"}))

	tasks := pending(t, app)
	require.Len(t, tasks, 1)
	assert.Equal(t, "medium", tasks[0].Priority)
	assert.Equal(t, "general", tasks[0].Category)
	assert.Equal(t, domain.DefaultEstimatedMinutes, tasks[0].EstimatedMinutes)
	assert.Equal(t, domain.DefaultImportance, tasks[0].Importance)
}

func TestAddCmd_Validation(t *testing.T) {
	setupLocalModeTestApp(t)

	tests := []struct {
		name  string
		setup func()
		text  string
	}{
		{"empty text", func() {}, "   "},
		{"bad priority", func() { priority = "whenever" }, "x"},
		{"bad due date", func() { dueDate = "next week" }, "x"},
		{"importance out of range", func() { importance = 9 }, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetAddFlags()
			tt.setup()
			addCmd.SetContext(context.Background())
			addCmd.SetOut(&bytes.Buffer{})

			assert.Error(t, addCmd.RunE(addCmd, []string{tt.text}))
		})
	}
}

func TestDoneCmd(t *testing.T) {
	app := setupLocalModeTestApp(t)
	resetAddFlags()

	addCmd.SetContext(context.Background())
	addCmd.SetOut(&bytes.Buffer{})
	require.NoError(t, addCmd.RunE(addCmd, []string{"Reply to emails"}))
	tasks := pending(t, app)
	require.Len(t, tasks, 1)

	var out bytes.Buffer
	doneCmd.SetContext(context.Background())
	doneCmd.SetOut(&out)
	require.NoError(t, doneCmd.RunE(doneCmd, []string{tasks[0].TaskID.String()}))

	assert.Contains(t, out.String(), "Task completed: ")
	assert.Empty(t, pending(t, app))
}

func TestDoneCmd_Errors(t *testing.T) {
	setupLocalModeTestApp(t)
	doneCmd.SetContext(context.Background())
	doneCmd.SetOut(&bytes.Buffer{})

	assert.Error(t, doneCmd.RunE(doneCmd, []string{"not-a-uuid"}))

	err := doneCmd.RunE(doneCmd, []string{"00000000-0000-0000-0000-0000000000ff"})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func addTask(t *testing.T, app *cli.App, text string) uuid.UUID {
	t.Helper()
	resetAddFlags()
	result, err := app.AddTaskHandler.Handle(context.Background(), commands.AddTaskCommand{
		UserID: app.CurrentUserID,
		Text:   text,
	})
	require.NoError(t, err)
	return result.TaskID
}

func runTaskCmd(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd.SetContext(context.Background())
	cmd.SetOut(&out)
	require.NoError(t, cmd.RunE(cmd, args))
	return out.String()
}

func TestListCmd(t *testing.T) {
	app := setupLocalModeTestApp(t)
	showAll = false
	t.Cleanup(func() { showAll = false })

	assert.Contains(t, runTaskCmd(t, listCmd), "No tasks found.")

	addTask(t, app, "Reply to emails")
	done := addTask(t, app, "Renew passport")
	runTaskCmd(t, doneCmd, done.String())

	out := runTaskCmd(t, listCmd)
	assert.Contains(t, out, "Tasks (1 pending, 1 completed):")
	assert.Contains(t, out, "[ ] Reply to emails (~)")
	assert.NotContains(t, out, "Renew passport")

	showAll = true
	out = runTaskCmd(t, listCmd)
	assert.Contains(t, out, "[x] Renew passport")
	assert.Less(t, strings.Index(out, "Reply to emails"), strings.Index(out, "Renew passport"))
}

func TestToggleCmd(t *testing.T) {
	app := setupLocalModeTestApp(t)
	id := addTask(t, app, "Call dentist")

	assert.Contains(t, runTaskCmd(t, toggleCmd, id.String()), "Task completed: ")
	assert.Empty(t, pending(t, app))

	assert.Contains(t, runTaskCmd(t, toggleCmd, id.String()), "Task reopened: ")
	tasks := pending(t, app)
	require.Len(t, tasks, 1)
	assert.Equal(t, id, tasks[0].TaskID)
}

func TestToggleCmd_UndoAlias(t *testing.T) {
	assert.Contains(t, toggleCmd.Aliases, "undo")

	found, _, err := Cmd.Find([]string{"undo"})
	require.NoError(t, err)
	assert.Equal(t, toggleCmd, found)
}

func TestDeleteCmd(t *testing.T) {
	app := setupLocalModeTestApp(t)
	keep := addTask(t, app, "Water plants")
	gone := addTask(t, app, "Old idea")

	assert.Contains(t, runTaskCmd(t, deleteCmd, gone.String()), "Task deleted: ")

	tasks := pending(t, app)
	require.Len(t, tasks, 1)
	assert.Equal(t, keep, tasks[0].TaskID)

	err := deleteCmd.RunE(deleteCmd, []string{gone.String()})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	err = toggleCmd.RunE(toggleCmd, []string{gone.String()})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestCommands_WithoutApp(t *testing.T) {
	cli.SetApp(nil)
	addCmd.SetContext(context.Background())

	assert.ErrorIs(t, addCmd.RunE(addCmd, []string{"x"}), cli.ErrNotInitialized)
	assert.ErrorIs(t, doneCmd.RunE(doneCmd, []string{"x"}), cli.ErrNotInitialized)
	for _, cmd := range []*cobra.Command{listCmd, toggleCmd, deleteCmd} {
		cmd.SetContext(context.Background())
		assert.ErrorIs(t, cmd.RunE(cmd, []string{"x"}), cli.ErrNotInitialized, cmd.Name())
	}
}
