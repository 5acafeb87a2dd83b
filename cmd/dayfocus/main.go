package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/dayfocus/adapter/cli"
	"github.com/felixgeelhaar/dayfocus/adapter/cli/task"
	"github.com/felixgeelhaar/dayfocus/internal/app"
	"github.com/felixgeelhaar/dayfocus/pkg/config"
	"github.com/felixgeelhaar/dayfocus/pkg/observability"
)

func main() {
	logger := observability.NewLogger(observability.DefaultLogConfig())

	// Create context with cancellation
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = newLogger(cfg)
	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

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
	cliApp.SetLimits(cfg.PlanMaxTasks, cfg.RankLimit)
	cli.SetApp(cliApp)

	cli.AddCommand(task.Cmd)

	cli.Execute(ctx)
}

func newLogger(cfg *config.Config) *slog.Logger {
	logCfg := observability.ConfigFor(cfg.IsProduction(), cfg.LogLevel, cfg.LogFormat)
	// stdout carries command output
	logCfg.Output = os.Stderr
	logCfg.ServiceVersion = cli.Version
	return observability.NewLogger(logCfg)
}
