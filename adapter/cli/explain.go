package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/queries"
)

var explainCmd = &cobra.Command{
	Use:   "explain [task-id]",
	Short: "Show how a task's score is made up",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.ExplainTaskHandler == nil {
			return ErrNotInitialized
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task id: %w", err)
		}

		result, err := app.ExplainTaskHandler.Handle(cmd.Context(), queries.ExplainTaskQuery{
			TaskID: taskID,
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if JSONOutput() {
			return PrintJSON(out, result)
		}

		e := result.Explanation
		printHeading(out, result.Task.Text)

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  FACTOR\tRAW\tWEIGHT\tWEIGHTED")
		for _, f := range e.Factors {
			fmt.Fprintf(tw, "  %s\t%.1f\t%.2f\t%.2f\n", f.Name, f.RawValue, f.Weight, f.WeightedValue)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "  weighted sum:        %.2f\n", e.WeightedSum)
		fmt.Fprintf(out, "  keyword boost:       %+.0f\n", e.KeywordBoost)
		fmt.Fprintf(out, "  priority multiplier: x%.2f (%s)\n", e.PriorityMultiplier, result.Task.EffectivePriority())
		fmt.Fprintf(out, "  energy band:         %s\n", e.EnergyBand)
		fmt.Fprintf(out, "  score:               %.2f\n", e.TotalScore)
		if len(e.Reasons) > 0 {
			fmt.Fprintf(out, "  reasons:             %s\n", strings.Join(e.Reasons, ", "))
		}
		fmt.Fprintf(out, "  best time:           %s\n", e.TimeRecommendation)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)
}
