package task

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dayfocus/adapter/cli"
	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/commands"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <task-id>",
	Short: "Delete a task",
	Long: `Delete a task. It disappears from lists, rankings and plans; the
record stays in the database marked as deleted.

Examples:
  dayfocus task delete 3f0c9a4e-...`,
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.DeleteTaskHandler == nil {
			return cli.ErrNotInitialized
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task id: %w", err)
		}

		err = app.DeleteTaskHandler.Handle(cmd.Context(), commands.DeleteTaskCommand{
			TaskID: taskID,
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Task deleted: %s\n", taskID)
		return nil
	},
}
