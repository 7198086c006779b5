package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addDescription string

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new task in the todo column",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "task description")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")

	task, err := svc.AddTask(cmd.Context(), name, addDescription)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added task %d: %s\n", task.ID, task.Name)
	return nil
}
