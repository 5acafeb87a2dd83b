package task

import (
	"github.com/spf13/cobra"
)

// Cmd is the task command group
var Cmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"tasks"},
	Short:   "Manage tasks",
	Long:    `Add, list, complete, reopen and delete the tasks dayfocus ranks.`,
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(doneCmd)
	Cmd.AddCommand(toggleCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(deleteCmd)
}
