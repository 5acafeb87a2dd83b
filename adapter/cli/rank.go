package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/queries"
)

var rankLimit int

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "List pending tasks by priority score",
	Long: `Score every pending task and print them highest first.

Examples:
  dayfocus rank             # Top tasks (RANK_LIMIT)
  dayfocus rank --limit 0   # All pending tasks
  dayfocus rank --json      # Machine-readable output`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.RankTasksHandler == nil {
			return ErrNotInitialized
		}

		limit := app.RankLimit
		if cmd.Flags().Changed("limit") {
			limit = rankLimit
		}

		result, err := app.RankTasksHandler.Handle(cmd.Context(), queries.RankTasksQuery{
			UserID: app.CurrentUserID,
			Limit:  limit,
		})
		if err != nil {
			return fmt.Errorf("failed to rank tasks: %w", err)
		}

		out := cmd.OutOrStdout()
		if JSONOutput() {
			return PrintJSON(out, result)
		}

		if len(result.Tasks) == 0 {
			fmt.Fprintln(out, queries.NoPendingTasksSuggestion)
			return nil
		}

		printHeading(out, fmt.Sprintf("RANKED TASKS (%d of %d pending)", len(result.Tasks), result.TotalPending))
		for _, t := range result.Tasks {
			printRankedTask(out, t, true)
		}
		return nil
	},
}

func init() {
	rankCmd.Flags().IntVarP(&rankLimit, "limit", "n", 0, "number of tasks to show (0 = all)")
	rootCmd.AddCommand(rankCmd)
}
