package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felwick/taskboard/internal/board"
	"github.com/felwick/taskboard/internal/model"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show the board",
	Long:    `Show every project with its tasks, completion percentage and overdue markers.`,
	RunE:    runList,
}

var listProject string

func init() {
	listCmd.Flags().StringVarP(&listProject, "project", "P", "", "Only show one project (id prefix or name)")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	manager, err := openBoard(ctx)
	if err != nil {
		return err
	}
	store := manager.Store()

	projects := store.Projects()
	if listProject != "" {
		p, err := resolveProject(store, listProject)
		if err != nil {
			return err
		}
		projects = []model.Project{p}
	}

	if len(projects) == 0 {
		fmt.Println("No projects yet. Create one with 'taskboard project add'.")
		return nil
	}

	now := time.Now()
	for _, p := range projects {
		printProject(store, p, now)
	}
	return nil
}

func printProject(store *board.Store, p model.Project, now time.Time) {
	header := fmt.Sprintf("%s [%s]", p.Name, shortID(p.ID))
	if p.Completed {
		header += " ✓ completed"
	}
	if p.Deadline != nil {
		header += fmt.Sprintf("  (deadline %s)", p.Deadline)
	}
	fmt.Println(header)

	tasks := store.TasksForProject(p.ID)
	fmt.Printf("  %d%% complete, %d task(s)\n", store.CompletionPercentage(p.ID), len(tasks))

	for _, t := range tasks {
		marker := " "
		if t.Status == model.StatusCompleted {
			marker = "x"
		}
		line := fmt.Sprintf("  [%s] %-40s %s %s", marker, t.Title, shortID(t.ID), t.Status)
		if t.DueDate != nil {
			line += fmt.Sprintf("  due %s", t.DueDate)
			if board.IsOverdue(t.DueDate, now) {
				line += " (overdue)"
			}
		}
		fmt.Println(line)
	}
	fmt.Println()
}
