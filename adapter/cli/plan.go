package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/queries"
	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
)

var (
	planMaxTasks int
	planCached   bool
	planDate     string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build today's plan",
	Long: `Build a daily plan from your pending tasks: one high-scoring task
for the morning, up to three quick wins and up to two afternoon tasks.

Examples:
  dayfocus plan                          # Build today's plan
  dayfocus plan --max 10                 # Show the top 10 of the ranking too
  dayfocus plan --cached                 # Show the last plan built today
  dayfocus plan --cached --date 2025-06-10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.GetDailyPlanHandler == nil {
			return ErrNotInitialized
		}
		out := cmd.OutOrStdout()

		if planCached {
			snapshot, err := app.GetCachedPlanHandler.Handle(cmd.Context(), queries.GetCachedPlanQuery{
				UserID: app.CurrentUserID,
				Date:   planDate,
			})
			if errors.Is(err, domain.ErrCacheMiss) {
				fmt.Fprintln(out, "No plan has been built for that day yet. Run `dayfocus plan`.")
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to load plan: %w", err)
			}
			if JSONOutput() {
				return PrintJSON(out, snapshot)
			}
			printSnapshot(out, snapshot)
			return nil
		}

		maxTasks := app.PlanMaxTasks
		if cmd.Flags().Changed("max") {
			maxTasks = planMaxTasks
		}

		result, err := app.GetDailyPlanHandler.Handle(cmd.Context(), queries.GetDailyPlanQuery{
			UserID:   app.CurrentUserID,
			MaxTasks: maxTasks,
		})
		if err != nil {
			return fmt.Errorf("failed to build plan: %w", err)
		}

		if JSONOutput() {
			return PrintJSON(out, result)
		}

		printSnapshot(out, &result.Plan)
		if Verbose() && len(result.TopTasks) > 0 {
			printHeading(out, "TOP OF THE RANKING")
			for _, t := range result.TopTasks {
				printRankedTask(out, t, true)
			}
		}
		return nil
	},
}

func printSnapshot(out io.Writer, snapshot *domain.PlanSnapshot) {
	title := "DAILY PLAN"
	if d, err := time.Parse(time.DateOnly, snapshot.Date); err == nil {
		title = "DAILY PLAN: " + d.Format("Monday, January 2, 2006")
	}
	printHeading(out, title)
	printPlan(out, snapshot.MorningFocus, snapshot.QuickWins, snapshot.Afternoon, snapshot.TotalMinutes)
}

func init() {
	planCmd.Flags().IntVar(&planMaxTasks, "max", 0, "length of the ranking returned with the plan")
	planCmd.Flags().BoolVar(&planCached, "cached", false, "show the last plan built instead of building a new one")
	planCmd.Flags().StringVar(&planDate, "date", "", "date of the cached plan (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(planCmd)
}
