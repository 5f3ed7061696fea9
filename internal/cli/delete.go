package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felwick/taskboard/internal/config"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [task-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Delete a task by its ID.

Examples:
  taskboard delete ab12
  taskboard rm ab12`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

// confirm prompts before a destructive operation when the config asks
// for it. Declining aborts silently with no state change.
func confirm(prompt string) bool {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	if !cfg.ConfirmDelete {
		return true
	}

	fmt.Printf("%s [y/N]: ", prompt)
	var answer string
	fmt.Scanln(&answer)
	return answer == "y" || answer == "Y"
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	manager, err := openBoard(ctx)
	if err != nil {
		return err
	}

	task, err := resolveTask(manager.Store(), args[0])
	if err != nil {
		return err
	}

	if !confirm(fmt.Sprintf("Delete task \"%s\"?", task.Title)) {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := manager.DeleteTask(ctx, task.ID); err != nil {
		return err
	}

	fmt.Printf("🗑  Deleted: \"%s\"\n", task.Title)
	return nil
}
