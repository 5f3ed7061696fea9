package board

import (
	"context"
	"fmt"

	"github.com/felwick/taskboard/internal/api"
	"github.com/felwick/taskboard/internal/logger"
	"github.com/felwick/taskboard/internal/model"
)

// Client is the slice of the remote API the board depends on. The
// concrete implementation is api.Client; the interface keeps the board
// logic testable against stub backends.
type Client interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	ListTasks(ctx context.Context) ([]model.Task, error)
	CreateProject(ctx context.Context, req api.CreateProjectRequest) (model.Project, error)
	CreateTask(ctx context.Context, req api.CreateTaskRequest) (model.Task, error)
	UpdateProject(ctx context.Context, id string, patch api.ProjectCompletedPatch) (model.Project, error)
	UpdateTask(ctx context.Context, id string, patch api.TaskStatusPatch) (model.Task, error)
	DeleteProject(ctx context.Context, id string) error
	DeleteTask(ctx context.Context, id string) error
}

// Manager coordinates every user-initiated change: validate locally,
// call the remote API, then reconcile the store with the authoritative
// response. A failed request leaves the store exactly as it was; no
// request is retried or de-duplicated. Overlapping updates to the same
// entity resolve last-response-wins.
type Manager struct {
	client Client
	store  *Store
}

// NewManager creates a manager over the given API client and store.
func NewManager(client Client, store *Store) *Manager {
	return &Manager{client: client, store: store}
}

// Store returns the store the manager reconciles into.
func (m *Manager) Store() *Store {
	return m.store
}

// surface prefers the server's own error message when one was sent and
// falls back to a generic per-operation message otherwise.
func surface(fallback string, err error) error {
	if api.ErrorMessage(err) != "" {
		return err
	}
	return fmt.Errorf("%s: %w", fallback, err)
}

// RefreshProjects replaces the project sequence with a fresh fetch. On
// failure the previous sequence is left untouched.
func (m *Manager) RefreshProjects(ctx context.Context) error {
	projects, err := m.client.ListProjects(ctx)
	if err != nil {
		return surface("failed to fetch projects", err)
	}
	m.store.SetProjects(projects)
	return nil
}

// RefreshTasks replaces the task sequence with a fresh fetch. On
// failure the previous sequence is left untouched.
func (m *Manager) RefreshTasks(ctx context.Context) error {
	tasks, err := m.client.ListTasks(ctx)
	if err != nil {
		return surface("failed to fetch tasks", err)
	}
	m.store.SetTasks(tasks)
	return nil
}

// Refresh reloads both sequences. The fetches are independent: a failed
// project fetch does not stop the task fetch, and each list is only
// replaced on its own success.
func (m *Manager) Refresh(ctx context.Context) error {
	errProjects := m.RefreshProjects(ctx)
	errTasks := m.RefreshTasks(ctx)
	if errProjects != nil {
		return errProjects
	}
	return errTasks
}

// AddProject creates a project. An empty name refuses to dispatch and
// is not an error: the form simply stays put for the user to finish.
func (m *Manager) AddProject(ctx context.Context, name string, deadline *model.Date) (model.Project, error) {
	if name == "" {
		return model.Project{}, nil
	}

	created, err := m.client.CreateProject(ctx, api.CreateProjectRequest{
		Name:     name,
		Deadline: deadline,
	})
	if err != nil {
		return model.Project{}, surface("failed to add project", err)
	}

	m.store.InsertProject(created)
	logger.Info("Project created", logger.F("id", created.ID), logger.F("name", created.Name))
	return created, nil
}

// AddTask creates a task in the given project. Missing title or project
// refuses to dispatch without error, same as AddProject.
func (m *Manager) AddTask(ctx context.Context, title, projectID string, status model.Status, dueDate *model.Date) (model.Task, error) {
	if title == "" || projectID == "" {
		return model.Task{}, nil
	}
	if !status.Valid() {
		status = model.StatusNotStarted
	}

	created, err := m.client.CreateTask(ctx, api.CreateTaskRequest{
		Title:     title,
		ProjectID: projectID,
		Status:    status,
		DueDate:   dueDate,
	})
	if err != nil {
		return model.Task{}, surface("failed to add task", err)
	}

	m.store.InsertTask(created)
	logger.Info("Task created", logger.F("id", created.ID), logger.F("project", projectID))
	return created, nil
}

// DeleteProject deletes a project and mirrors the delete locally,
// cascading to the project's tasks. The server is only asked to delete
// the project itself; the task cleanup is local state only. Interactive
// confirmation is the caller's job.
func (m *Manager) DeleteProject(ctx context.Context, id string) error {
	if err := m.client.DeleteProject(ctx, id); err != nil {
		return surface("failed to delete project", err)
	}

	m.store.RemoveProject(id)
	m.store.RemoveTasksOfProject(id)
	logger.Info("Project deleted", logger.F("id", id))
	return nil
}

// MarkProjectComplete sets completed on the server and swaps in the
// updated record. There is no way back to incomplete.
func (m *Manager) MarkProjectComplete(ctx context.Context, id string) (model.Project, error) {
	updated, err := m.client.UpdateProject(ctx, id, api.ProjectCompletedPatch{Completed: true})
	if err != nil {
		return model.Project{}, surface("failed to mark project complete", err)
	}

	m.store.ReplaceProject(id, updated)
	logger.Info("Project completed", logger.F("id", id))
	return updated, nil
}

// DeleteTask deletes a task and removes it locally. Interactive
// confirmation is the caller's job.
func (m *Manager) DeleteTask(ctx context.Context, id string) error {
	if err := m.client.DeleteTask(ctx, id); err != nil {
		return surface("failed to delete task", err)
	}

	m.store.RemoveTask(id)
	logger.Info("Task deleted", logger.F("id", id))
	return nil
}

// UpdateTaskStatus moves a task to a new status on the server and swaps
// in the updated record.
func (m *Manager) UpdateTaskStatus(ctx context.Context, id string, status model.Status) (model.Task, error) {
	if !status.Valid() {
		return model.Task{}, fmt.Errorf("invalid status %q", status)
	}

	updated, err := m.client.UpdateTask(ctx, id, api.TaskStatusPatch{Status: status})
	if err != nil {
		return model.Task{}, surface("failed to update task status", err)
	}

	m.store.ReplaceTask(id, updated)
	logger.Info("Task status updated", logger.F("id", id), logger.F("status", status))
	return updated, nil
}
