package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalApp "github.com/felixgeelhaar/dayfocus/internal/app"
	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/commands"
	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/queries"
	"github.com/felixgeelhaar/dayfocus/pkg/config"
)

// setupTestApp wires a CLI app over a fresh SQLite database.
func setupTestApp(t *testing.T) *App {
	t.Helper()

	cfg := &config.Config{
		AppEnv:       "test",
		UserID:       config.DefaultUserID,
		SQLitePath:   filepath.Join(t.TempDir(), "test.db"),
		PlanMaxTasks: 5,
		RankLimit:    15,
		PlanCacheTTL: time.Hour,
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	container, err := internalApp.NewContainer(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(container.Close)

	a := NewApp(
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
	a.SetCurrentUserID(container.UserID)
	a.SetLimits(cfg.PlanMaxTasks, cfg.RankLimit)

	SetApp(a)
	SetLogger(logger)
	t.Cleanup(func() { SetApp(nil) })
	return a
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()), out.String())
	return out.String()
}

func seed(t *testing.T, a *App) (urgent, someday commands.AddTaskResult) {
	t.Helper()
	ctx := context.Background()

	u, err := a.AddTaskHandler.Handle(ctx, commands.AddTaskCommand{
		UserID:           a.CurrentUserID,
		Text:             "urgent: fix production outage",
		Priority:         "urgent",
		Category:         "work",
		DueDate:          time.Now().Add(2 * time.Hour).Format(time.RFC3339),
		EstimatedMinutes: 90,
		Importance:       5,
	})
	require.NoError(t, err)

	s, err := a.AddTaskHandler.Handle(ctx, commands.AddTaskCommand{
		UserID:     a.CurrentUserID,
		Text:       "maybe organize old photos",
		Priority:   "low",
		Importance: 1,
	})
	require.NoError(t, err)
	return *u, *s
}

func TestCommands_WithoutApp(t *testing.T) {
	SetApp(nil)
	resetFlags(rootCmd)
	rootCmd.SetArgs([]string{"rank"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	err := rootCmd.ExecuteContext(context.Background())
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestRankCmd(t *testing.T) {
	a := setupTestApp(t)

	assert.Contains(t, run(t, "rank"), queries.NoPendingTasksSuggestion)

	seed(t, a)
	out := run(t, "rank")

	assert.Contains(t, out, "RANKED TASKS (2 of 2 pending)")
	assert.Less(t,
		bytes.Index([]byte(out), []byte("fix production outage")),
		bytes.Index([]byte(out), []byte("organize old photos")))
	assert.Contains(t, out, "🚨 Contains 'urgent'")

	limited := run(t, "rank", "--limit", "1")
	assert.Contains(t, limited, "RANKED TASKS (1 of 2 pending)")
	assert.NotContains(t, limited, "organize old photos")
}

func TestRankCmd_JSON(t *testing.T) {
	a := setupTestApp(t)
	urgent, _ := seed(t, a)

	var result queries.RankTasksResult
	require.NoError(t, json.Unmarshal([]byte(run(t, "rank", "--json")), &result))

	require.Len(t, result.Tasks, 2)
	assert.Equal(t, urgent.TaskID, result.Tasks[0].TaskID)
	assert.Equal(t, 1, result.Tasks[0].Rank)
	assert.Equal(t, 2, result.TotalPending)
}

func TestPlanCmd(t *testing.T) {
	a := setupTestApp(t)

	assert.Contains(t, run(t, "plan", "--cached"), "No plan has been built")

	seed(t, a)
	out := run(t, "plan")

	assert.Contains(t, out, "DAILY PLAN: ")
	assert.Contains(t, out, "MORNING FOCUS")
	assert.Contains(t, out, "QUICK WINS")
	assert.Contains(t, out, "AFTERNOON")
	assert.Contains(t, out, "Total: ")

	cached := run(t, "plan", "--cached", "--json")
	var snapshot struct {
		TotalMinutes int `json:"total_minutes"`
	}
	require.NoError(t, json.Unmarshal([]byte(cached), &snapshot))
	assert.Positive(t, snapshot.TotalMinutes)
}

func TestSuggestCmd(t *testing.T) {
	a := setupTestApp(t)

	assert.Contains(t, run(t, "suggest"), queries.NoPendingTasksSuggestion)

	seed(t, a)
	out := run(t, "suggest")

	assert.Contains(t, out, "🎯 Start with: 'urgent: fix production outage'")
	assert.Contains(t, out, "(90 min)")
	assert.Contains(t, out, "ORDER (2 pending, 120 min total)")
	assert.Contains(t, out, "TODAY")
}

func TestExplainCmd(t *testing.T) {
	a := setupTestApp(t)
	urgent, _ := seed(t, a)

	out := run(t, "explain", urgent.TaskID.String())

	assert.Contains(t, out, "urgent: fix production outage")
	for _, factor := range []string{"urgency", "importance", "effort", "energy", "category", "aging"} {
		assert.Contains(t, out, factor)
	}
	assert.Contains(t, out, "priority multiplier: x1.30 (urgent)")
	assert.Contains(t, out, "keyword boost:       +25")
}

func TestExplainCmd_InvalidID(t *testing.T) {
	setupTestApp(t)
	resetFlags(rootCmd)
	rootCmd.SetArgs([]string{"explain", "not-a-uuid"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	assert.Error(t, rootCmd.ExecuteContext(context.Background()))
}

func TestVersionCmd(t *testing.T) {
	assert.Contains(t, run(t, "version"), "dayfocus dev")
}
