package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dayfocus/adapter/cli"
	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/commands"
)

var (
	priority   string
	category   string
	dueDate    string
	minutes    int
	importance int
)

var addCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Add a task",
	Long: `Add a pending task. Unset fields use the defaults: medium priority,
general category, 30 minutes and importance 3.

Examples:
  dayfocus task add "Reply to emails" -m 15 -c work
  dayfocus task add "Prepare quarterly budget" -p high -c finance -m 90 -i 5 --due 2025-06-10T17:00
  dayfocus task add "Pay electricity bill" --due 2025-06-12`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AddTaskHandler == nil {
			return cli.ErrNotInitialized
		}

		result, err := app.AddTaskHandler.Handle(cmd.Context(), commands.AddTaskCommand{
			UserID:           app.CurrentUserID,
			Text:             args[0],
			Priority:         priority,
			Category:         category,
			DueDate:          dueDate,
			EstimatedMinutes: minutes,
			Importance:       importance,
		})
		if err != nil {
			return fmt.Errorf("failed to add task: %w", err)
		}

		out := cmd.OutOrStdout()
		if cli.JSONOutput() {
			return cli.PrintJSON(out, result.Task)
		}

		t := result.Task
		fmt.Fprintf(out, "Task added: %s\n", result.TaskID)
		fmt.Fprintf(out, "  text: %s\n", t.Text)
		fmt.Fprintf(out, "  priority: %s, category: %s, %d min, importance %d\n",
			t.EffectivePriority(), t.EffectiveCategory(), t.Minutes(), t.EffectiveImportance())
		if !t.DueDate.IsZero() {
			fmt.Fprintf(out, "  due: %s\n", t.DueDate)
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&priority, "priority", "p", "", "task priority (low, medium, high, urgent)")
	addCmd.Flags().StringVarP(&category, "category", "c", "", "category (health, finance, work, learning, personal, creative, ...)")
	addCmd.Flags().StringVar(&dueDate, "due", "", "due date (YYYY-MM-DD or YYYY-MM-DDTHH:MM)")
	addCmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "estimated minutes")
	addCmd.Flags().IntVarP(&importance, "importance", "i", 0, "importance from 1 to 5")
}
