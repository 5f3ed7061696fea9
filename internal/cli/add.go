package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felwick/taskboard/internal/model"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a new task to a project.

Examples:
  taskboard add "Design homepage" --project website
  taskboard add "Write tests" -P website -s in-progress -d 2026-09-15`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addProject string
	addStatus  string
	addDue     string
)

func init() {
	addCmd.Flags().StringVarP(&addProject, "project", "P", "", "Project (id prefix or name) to add the task to")
	addCmd.Flags().StringVarP(&addStatus, "status", "s", "not-started", "Initial status (not-started, in-progress, completed)")
	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "Due date (YYYY-MM-DD)")
	_ = addCmd.MarkFlagRequired("project")
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	manager, err := openBoard(ctx)
	if err != nil {
		return err
	}

	title := strings.Join(args, " ")

	project, err := resolveProject(manager.Store(), addProject)
	if err != nil {
		return err
	}

	status, err := model.ParseStatus(addStatus)
	if err != nil {
		return err
	}

	due, err := parseDueDate(addDue)
	if err != nil {
		return err
	}

	created, err := manager.AddTask(ctx, title, project.ID, status, due)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Added to [%s]: \"%s\" (%s)\n", project.Name, created.Title, created.Status)
	return nil
}
