package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/queries"
)

var suggestCmd = &cobra.Command{
	Use:     "suggest",
	Aliases: []string{"next"},
	Short:   "Suggest what to work on now",
	Long: `Print a one-line recommendation for the best task to start with,
followed by the ordered list and a compact daily plan.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.SuggestHandler == nil {
			return ErrNotInitialized
		}

		result, err := app.SuggestHandler.Handle(cmd.Context(), queries.SuggestQuery{
			UserID:    app.CurrentUserID,
			RankLimit: app.RankLimit,
		})
		if err != nil {
			return fmt.Errorf("failed to build suggestion: %w", err)
		}

		out := cmd.OutOrStdout()
		if JSONOutput() {
			return PrintJSON(out, result)
		}

		fmt.Fprintln(out, result.Suggestion)
		if result.TotalPending == 0 {
			return nil
		}
		if result.TopTimeRecommendation != "" {
			fmt.Fprintf(out, "  Best time: %s\n", result.TopTimeRecommendation)
		}

		printHeading(out, fmt.Sprintf("ORDER (%d pending, %d min total)", result.TotalPending, result.TotalMinutesNeeded))
		for _, t := range result.OrderedTasks {
			printRankedTask(out, t, Verbose())
		}

		if plan := result.DailyPlan; plan != nil {
			printHeading(out, "TODAY")
			printPlan(out, plan.MorningFocus, plan.QuickWins, plan.Afternoon, plan.TotalMinutes)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}
