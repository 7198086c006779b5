package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/taskboard/internal/tasks/domain"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the whole board as YAML",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

// exportedTask is the YAML shape of a task; kept separate from the domain
// entity so the wire format doesn't pin internal field layout.
type exportedTask struct {
	ID          int64      `yaml:"id"`
	GUID        string     `yaml:"guid"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Status      string     `yaml:"status"`
	CreatedAt   time.Time  `yaml:"created_at"`
	UpdatedAt   *time.Time `yaml:"updated_at,omitempty"`
}

func runExport(cmd *cobra.Command, args []string) error {
	tasks, err := svc.ListByStatus(cmd.Context(), domain.ListFilter{})
	if err != nil {
		return err
	}

	exported := make([]exportedTask, len(tasks))
	for i, t := range tasks {
		exported[i] = exportedTask{
			ID:          t.ID,
			GUID:        t.GUID,
			Name:        t.Name,
			Description: t.Description,
			Status:      string(t.Status),
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		}
	}

	data, err := yaml.Marshal(map[string][]exportedTask{"tasks": exported})
	if err != nil {
		return fmt.Errorf("encoding board: %w", err)
	}

	if exportOutput == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(exportOutput, data, 0o600); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tasks to %s\n", len(exported), exportOutput)
	return nil
}
