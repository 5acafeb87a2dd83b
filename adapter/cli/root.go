package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dayfocus/pkg/observability"
)

var (
	verbose    bool
	outputJSON bool
	logger     *slog.Logger
)

type commandContext struct {
	startedAt time.Time
}

type commandContextKey struct{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dayfocus",
	Short: "dayfocus - what to work on next",
	Long: `dayfocus ranks your pending tasks by urgency, importance, effort,
energy fit, category and age, and turns the ranking into a daily plan:
one hard task for the morning, a few quick wins, and afternoon work.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		inv := observability.Invocation{
			Surface:   observability.SurfaceCLI,
			Operation: cmd.CommandPath(),
		}
		if app := GetApp(); app != nil {
			inv.UserID = app.CurrentUserID
		}
		ctx = observability.StartInvocation(ctx, inv)
		ctx = context.WithValue(ctx, commandContextKey{}, commandContext{startedAt: time.Now()})
		cmd.SetContext(ctx)
		logger.DebugContext(ctx, "command start")
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		info, ok := cmd.Context().Value(commandContextKey{}).(commandContext)
		if !ok {
			return
		}
		logger.DebugContext(cmd.Context(), "command end",
			observability.DurationKey, time.Since(info.startedAt).Milliseconds(),
		)
	},
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "print results as JSON")
}

// AddCommand adds a command to the root command.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// RootCmd returns the root command.
func RootCmd() *cobra.Command {
	return rootCmd
}

// SetLogger sets the CLI logger.
func SetLogger(l *slog.Logger) {
	logger = l
}

// Verbose reports whether --verbose was given.
func Verbose() bool {
	return verbose
}

// JSONOutput reports whether --json was given.
func JSONOutput() bool {
	return outputJSON
}
