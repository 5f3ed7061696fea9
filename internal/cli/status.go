package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felwick/taskboard/internal/model"
)

var statusCmd = &cobra.Command{
	Use:   "status [task-id] [new-status]",
	Short: "Change a task's status",
	Long: `Move a task to a new status. Status may move in any direction.

Examples:
  taskboard status ab12 in-progress
  taskboard status ab12 done`,
	Args: cobra.ExactArgs(2),
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	manager, err := openBoard(ctx)
	if err != nil {
		return err
	}

	task, err := resolveTask(manager.Store(), args[0])
	if err != nil {
		return err
	}

	status, err := model.ParseStatus(args[1])
	if err != nil {
		return err
	}

	updated, err := manager.UpdateTaskStatus(ctx, task.ID, status)
	if err != nil {
		return err
	}

	fmt.Printf("✓ \"%s\" → %s\n", updated.Title, updated.Status)
	return nil
}
