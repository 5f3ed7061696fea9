package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/felwick/taskboard/internal/api"
	"github.com/felwick/taskboard/internal/board"
	"github.com/felwick/taskboard/internal/model"
)

// openBoard builds a manager over the remote API and loads both lists.
func openBoard(ctx context.Context) (*board.Manager, error) {
	client, err := api.NewClient()
	if err != nil {
		return nil, err
	}
	if !client.IsLoggedIn() {
		return nil, fmt.Errorf("not logged in, run 'taskboard auth login' first")
	}

	manager := board.NewManager(client, board.NewStore())
	if err := manager.Refresh(ctx); err != nil {
		return nil, err
	}
	return manager, nil
}

// resolveProject finds a project by id prefix or exact name.
func resolveProject(s *board.Store, ref string) (model.Project, error) {
	var matches []model.Project
	for _, p := range s.Projects() {
		if p.ID == ref || p.Name == ref {
			return p, nil
		}
		if strings.HasPrefix(p.ID, ref) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return model.Project{}, fmt.Errorf("project not found: %s", ref)
	default:
		return model.Project{}, fmt.Errorf("ambiguous project id: %s", ref)
	}
}

// resolveTask finds a task by id prefix.
func resolveTask(s *board.Store, ref string) (model.Task, error) {
	var matches []model.Task
	for _, t := range s.Tasks() {
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return model.Task{}, fmt.Errorf("task not found: %s", ref)
	default:
		return model.Task{}, fmt.Errorf("ambiguous task id: %s", ref)
	}
}

// shortID trims a server id for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// parseDueDate parses an optional date flag.
func parseDueDate(value string) (*model.Date, error) {
	if value == "" {
		return nil, nil
	}
	d, err := model.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
