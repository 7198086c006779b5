package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/taskboard/internal/tasks/domain"
)

var showCmd = &cobra.Command{
	Use:   "show <id|name>",
	Short: "Show one task in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	var (
		task *domain.Task
		err  error
	)
	// Numeric arguments are ids; anything else is a name lookup.
	if id, parseErr := strconv.ParseInt(args[0], 10, 64); parseErr == nil {
		task, err = svc.FindByID(cmd.Context(), id)
	} else {
		task, err = svc.FindByName(cmd.Context(), args[0])
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:          %d\n", task.ID)
	fmt.Fprintf(out, "GUID:        %s\n", task.GUID)
	fmt.Fprintf(out, "Name:        %s\n", task.Name)
	fmt.Fprintf(out, "Status:      %s\n", task.Status)
	if task.Description != "" {
		fmt.Fprintf(out, "Description: %s\n", task.Description)
	}
	fmt.Fprintf(out, "Created:     %s\n", task.CreatedAt.Format(time.DateTime))
	if task.UpdatedAt != nil {
		fmt.Fprintf(out, "Updated:     %s\n", task.UpdatedAt.Format(time.DateTime))
	}
	return nil
}
