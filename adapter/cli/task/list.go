package task

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dayfocus/adapter/cli"
	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/queries"
)

var showAll bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks in the order they were added. Completed tasks are hidden
unless --all is given; deleted tasks never show.

Examples:
  dayfocus task list           # Pending tasks
  dayfocus task list --all     # Pending and completed tasks
  dayfocus task list --json`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListTasksHandler == nil {
			return cli.ErrNotInitialized
		}

		result, err := app.ListTasksHandler.Handle(cmd.Context(), queries.ListTasksQuery{
			UserID:      app.CurrentUserID,
			IncludeDone: showAll,
		})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		out := cmd.OutOrStdout()
		if cli.JSONOutput() {
			return cli.PrintJSON(out, result)
		}

		if len(result.Tasks) == 0 {
			fmt.Fprintln(out, "No tasks found.")
			return nil
		}

		fmt.Fprintf(out, "Tasks (%d pending, %d completed):\n", result.Pending, result.Completed)
		fmt.Fprintln(out, strings.Repeat("-", 60))
		for _, t := range result.Tasks {
			fmt.Fprintf(out, "%s %s %s\n", statusIcon(t.Completed), t.Text, priorityBadge(t.Priority))
			fmt.Fprintf(out, "   ID: %s\n", t.ID)
			fmt.Fprintf(out, "   %s, %d min, importance %d\n", t.Category, t.EstimatedMinutes, t.Importance)
			if t.DueDate != "" {
				fmt.Fprintf(out, "   Due: %s\n", t.DueDate)
			}
		}
		return nil
	},
}

func statusIcon(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

func priorityBadge(priority string) string {
	switch priority {
	case "urgent":
		return "(!!!)"
	case "high":
		return "(!)"
	case "medium":
		return "(~)"
	case "low":
		return "(.)"
	default:
		return ""
	}
}

func init() {
	listCmd.Flags().BoolVarP(&showAll, "all", "a", false, "include completed tasks")
}
