package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/taskboard/internal/tasks/domain"
)

var listStatus string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, optionally filtered by status",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "filter by status (todo, doing, done)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	var filter domain.ListFilter
	if listStatus != "" {
		status := domain.Status(listStatus)
		if !status.IsValid() {
			return fmt.Errorf("unknown status %q (todo, doing, done)", listStatus)
		}
		filter.Status = status
	}

	tasks, err := svc.ListByStatus(cmd.Context(), filter)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks")
		return nil
	}

	fmt.Fprintf(out, "%-4s  %-6s  %-30s  %s\n", "ID", "STATUS", "NAME", "UPDATED")
	for _, task := range tasks {
		updated := "-"
		if task.UpdatedAt != nil {
			updated = task.UpdatedAt.Format(time.DateTime)
		}
		fmt.Fprintf(out, "%-4d  %-6s  %-30s  %s\n", task.ID, task.Status, task.Name, updated)
	}
	return nil
}
