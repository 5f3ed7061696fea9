package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/felwick/taskboard/internal/api"
	"github.com/felwick/taskboard/internal/board"
	"github.com/felwick/taskboard/internal/config"
	"github.com/felwick/taskboard/internal/logger"
	"github.com/felwick/taskboard/internal/model"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddTask
	ModeAddTaskDue
	ModeAddProject
	ModeAddProjectDeadline
	ModeConfirmDelete
	ModeHelp
)

// Model is the main TUI model
type Model struct {
	client  *api.Client
	cfg     *config.Config
	manager *board.Manager

	// UI state
	width      int
	height     int
	mode       Mode
	projCursor int
	taskCursor int

	// Grab-and-move reorder
	grabbedID string

	// Input
	input textinput.Model

	// First step of the two-step add forms
	pendingTitle string
	pendingName  string

	// Pending delete confirmation
	confirmKind  string // "task" or "project"
	confirmID    string
	confirmLabel string

	message string
}

// NewModel creates a new TUI model and loads the board from the server.
func NewModel(client *api.Client, cfg *config.Config) Model {
	logger.Info("Initializing TUI model")

	ti := textinput.New()
	ti.Placeholder = "Enter task..."
	ti.CharLimit = 256
	ti.Width = 50

	m := Model{
		client:  client,
		cfg:     cfg,
		manager: board.NewManager(client, board.NewStore()),
		mode:    ModeNormal,
		input:   ti,
	}

	if err := m.manager.Refresh(context.Background()); err != nil {
		m.message = err.Error()
	}

	logger.Debug("TUI model initialized",
		logger.F("projects", len(m.store().Projects())),
		logger.F("tasks", len(m.store().Tasks())))
	return m
}

func (m *Model) store() *board.Store {
	return m.manager.Store()
}

func (m *Model) currentProject() *model.Project {
	projects := m.store().Projects()
	if m.projCursor < len(projects) {
		return &projects[m.projCursor]
	}
	return nil
}

// columnTasks returns the tasks of the focused project, in store order.
func (m *Model) columnTasks() []model.Task {
	proj := m.currentProject()
	if proj == nil {
		return nil
	}
	return m.store().TasksForProject(proj.ID)
}

func (m *Model) currentTask() *model.Task {
	tasks := m.columnTasks()
	if m.taskCursor < len(tasks) {
		return &tasks[m.taskCursor]
	}
	return nil
}

// globalIndex maps a task id to its position in the full task sequence,
// which is the index space MoveTask works in.
func (m *Model) globalIndex(id string) int {
	for i, t := range m.store().Tasks() {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// clampCursors keeps both cursors inside the data after refreshes and
// deletes.
func (m *Model) clampCursors() {
	if m.projCursor >= len(m.store().Projects()) {
		m.projCursor = 0
		m.taskCursor = 0
	}
	if n := len(m.columnTasks()); m.taskCursor >= n {
		if n > 0 {
			m.taskCursor = n - 1
		} else {
			m.taskCursor = 0
		}
	}
}
