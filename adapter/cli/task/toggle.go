package task

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dayfocus/adapter/cli"
	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/commands"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <task-id>",
	Short: "Flip a task between pending and done",
	Long: `Mark a pending task done, or reopen a completed one so it is ranked
and planned again.

Examples:
  dayfocus task undo 3f0c9a4e-...    # Reopen a task marked done by mistake`,
	Aliases: []string{"undo"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ToggleTaskHandler == nil {
			return cli.ErrNotInitialized
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task id: %w", err)
		}

		result, err := app.ToggleTaskHandler.Handle(cmd.Context(), commands.ToggleTaskCommand{
			TaskID: taskID,
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to toggle task: %w", err)
		}

		out := cmd.OutOrStdout()
		if cli.JSONOutput() {
			return cli.PrintJSON(out, result)
		}
		if result.Completed {
			fmt.Fprintf(out, "Task completed: %s\n", taskID)
		} else {
			fmt.Fprintf(out, "Task reopened: %s\n", taskID)
		}
		return nil
	},
}
