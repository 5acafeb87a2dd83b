package task

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dayfocus/adapter/cli"
	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/commands"
)

var doneCmd = &cobra.Command{
	Use:     "done [task-id]",
	Aliases: []string{"complete"},
	Short:   "Mark a task as done",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CompleteTaskHandler == nil {
			return cli.ErrNotInitialized
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task id: %w", err)
		}

		err = app.CompleteTaskHandler.Handle(cmd.Context(), commands.CompleteTaskCommand{
			TaskID: taskID,
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to complete task: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Task completed: %s\n", taskID)
		return nil
	},
}
