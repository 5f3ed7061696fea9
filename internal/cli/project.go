package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a new project",
	Long: `Create a new project.

Examples:
  taskboard project add "Website relaunch"
  taskboard project add "Q4 planning" --deadline 2026-12-31`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectAdd,
}

var projectCompleteCmd = &cobra.Command{
	Use:   "complete [project]",
	Short: "Mark a project complete",
	Long:  `Mark a project complete. This cannot be undone.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectComplete,
}

var projectDeleteCmd = &cobra.Command{
	Use:     "delete [project]",
	Aliases: []string{"rm"},
	Short:   "Delete a project and its tasks",
	Args:    cobra.ExactArgs(1),
	RunE:    runProjectDelete,
}

var projectDeadline string

func init() {
	projectAddCmd.Flags().StringVarP(&projectDeadline, "deadline", "d", "", "Deadline (YYYY-MM-DD)")

	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectCompleteCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}

func runProjectAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	manager, err := openBoard(ctx)
	if err != nil {
		return err
	}

	deadline, err := parseDueDate(projectDeadline)
	if err != nil {
		return err
	}

	created, err := manager.AddProject(ctx, args[0], deadline)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Created project: %s [%s]\n", created.Name, shortID(created.ID))
	return nil
}

func runProjectComplete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	manager, err := openBoard(ctx)
	if err != nil {
		return err
	}

	project, err := resolveProject(manager.Store(), args[0])
	if err != nil {
		return err
	}
	if project.Completed {
		fmt.Printf("\"%s\" is already complete.\n", project.Name)
		return nil
	}

	updated, err := manager.MarkProjectComplete(ctx, project.ID)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Completed project: %s\n", updated.Name)
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	manager, err := openBoard(ctx)
	if err != nil {
		return err
	}

	project, err := resolveProject(manager.Store(), args[0])
	if err != nil {
		return err
	}

	tasks := manager.Store().TasksForProject(project.ID)
	if !confirm(fmt.Sprintf("Delete project \"%s\" and its %d task(s)?", project.Name, len(tasks))) {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := manager.DeleteProject(ctx, project.ID); err != nil {
		return err
	}

	fmt.Printf("🗑  Deleted project: \"%s\"\n", project.Name)
	return nil
}
