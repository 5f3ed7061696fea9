package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/felwick/taskboard/internal/model"
)

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeAddTask, ModeAddTaskDue, ModeAddProject, ModeAddProjectDeadline:
			return m.updateInput(msg)
		case ModeConfirmDelete:
			return m.handleConfirmKeys(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Left):
		if m.projCursor > 0 {
			m.projCursor--
			m.taskCursor = 0
			m.grabbedID = ""
		}

	case key.Matches(msg, keys.Right):
		if m.projCursor < len(m.store().Projects())-1 {
			m.projCursor++
			m.taskCursor = 0
			m.grabbedID = ""
		}

	case key.Matches(msg, keys.Up):
		if m.grabbedID != "" {
			m.moveGrabbed(-1)
		} else if m.taskCursor > 0 {
			m.taskCursor--
		}

	case key.Matches(msg, keys.Down):
		if m.grabbedID != "" {
			m.moveGrabbed(1)
		} else if m.taskCursor < len(m.columnTasks())-1 {
			m.taskCursor++
		}

	case key.Matches(msg, keys.Add):
		return m.startAddTask()

	case key.Matches(msg, keys.Project):
		return m.startAddProject()

	case key.Matches(msg, keys.Status):
		m.handleCycleStatus()

	case msg.String() == "1", msg.String() == "2", msg.String() == "3":
		m.handleSetStatus(model.Statuses()[int(msg.String()[0]-'1')])

	case key.Matches(msg, keys.Complete):
		m.handleCompleteProject()

	case key.Matches(msg, keys.Delete):
		m.startDeleteTask()

	case key.Matches(msg, keys.DelProj):
		m.startDeleteProject()

	case key.Matches(msg, keys.Grab):
		m.handleGrab()

	case key.Matches(msg, keys.Refresh):
		m.handleRefresh()

	case key.Matches(msg, keys.Logout):
		m.handleLogout()

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp

	case key.Matches(msg, keys.Escape):
		if m.grabbedID != "" {
			m.grabbedID = ""
			m.message = "Drop cancelled"
		} else if m.message != "" {
			m.message = ""
		}
	}

	return m, nil
}

// moveGrabbed shifts the grabbed task one slot up or down within its
// column. The column positions are translated to positions in the full
// task sequence before asking the store to reorder.
func (m *Model) moveGrabbed(delta int) {
	tasks := m.columnTasks()
	cur := -1
	for i, t := range tasks {
		if t.ID == m.grabbedID {
			cur = i
			break
		}
	}
	if cur < 0 {
		m.grabbedID = ""
		return
	}

	target := cur + delta
	if target < 0 || target >= len(tasks) {
		return
	}

	src := m.globalIndex(tasks[cur].ID)
	dst := m.globalIndex(tasks[target].ID)
	m.store().MoveTask(src, dst)
	m.taskCursor = target
}

func (m *Model) handleGrab() {
	if m.grabbedID != "" {
		m.grabbedID = ""
		m.message = "Dropped"
		return
	}
	task := m.currentTask()
	if task == nil {
		return
	}
	m.grabbedID = task.ID
	m.message = "Moving task (j/k to reorder, m to drop)"
}

func (m Model) startAddTask() (tea.Model, tea.Cmd) {
	if m.currentProject() == nil {
		m.message = "No project. Press 'p' to create one."
		return m, nil
	}
	m.mode = ModeAddTask
	m.pendingTitle = ""
	m.input.SetValue("")
	m.input.Placeholder = "Enter task..."
	m.input.Focus()
	return m, textinput.Blink
}

func (m Model) startAddProject() (tea.Model, tea.Cmd) {
	m.mode = ModeAddProject
	m.pendingName = ""
	m.input.SetValue("")
	m.input.Placeholder = "Enter project name..."
	m.input.Focus()
	return m, textinput.Blink
}

func (m *Model) handleCycleStatus() {
	task := m.currentTask()
	if task == nil {
		return
	}

	order := model.Statuses()
	next := order[0]
	for i, s := range order {
		if s == task.Status {
			next = order[(i+1)%len(order)]
			break
		}
	}
	m.handleSetStatus(next)
}

func (m *Model) handleSetStatus(status model.Status) {
	task := m.currentTask()
	if task == nil || task.Status == status {
		return
	}

	updated, err := m.manager.UpdateTaskStatus(context.Background(), task.ID, status)
	if err != nil {
		m.message = err.Error()
		return
	}
	m.message = fmt.Sprintf("%s: %s", updated.Title, updated.Status)
}

func (m *Model) handleCompleteProject() {
	proj := m.currentProject()
	if proj == nil {
		return
	}
	if proj.Completed {
		m.message = "Project already completed"
		return
	}

	updated, err := m.manager.MarkProjectComplete(context.Background(), proj.ID)
	if err != nil {
		m.message = err.Error()
		return
	}
	m.message = fmt.Sprintf("Completed: %s", updated.Name)
}

func (m *Model) startDeleteTask() {
	task := m.currentTask()
	if task == nil {
		return
	}

	if !m.cfg.ConfirmDelete {
		m.deleteTask(task.ID, task.Title)
		return
	}

	m.mode = ModeConfirmDelete
	m.confirmKind = "task"
	m.confirmID = task.ID
	m.confirmLabel = task.Title
}

func (m *Model) startDeleteProject() {
	proj := m.currentProject()
	if proj == nil {
		return
	}

	if !m.cfg.ConfirmDelete {
		m.deleteProject(proj.ID, proj.Name)
		return
	}

	m.mode = ModeConfirmDelete
	m.confirmKind = "project"
	m.confirmID = proj.ID
	m.confirmLabel = proj.Name
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		if m.confirmKind == "project" {
			m.deleteProject(m.confirmID, m.confirmLabel)
		} else {
			m.deleteTask(m.confirmID, m.confirmLabel)
		}
		m.mode = ModeNormal
	case "n", "N", "esc", "q":
		m.mode = ModeNormal
		m.message = "Delete cancelled"
	}
	return m, nil
}

func (m *Model) deleteTask(id, title string) {
	if err := m.manager.DeleteTask(context.Background(), id); err != nil {
		m.message = err.Error()
		return
	}
	if m.grabbedID == id {
		m.grabbedID = ""
	}
	m.clampCursors()
	m.message = fmt.Sprintf("Deleted: %s", title)
}

func (m *Model) deleteProject(id, name string) {
	if err := m.manager.DeleteProject(context.Background(), id); err != nil {
		m.message = err.Error()
		return
	}
	m.grabbedID = ""
	m.clampCursors()
	m.message = fmt.Sprintf("Deleted project: %s", name)
}

func (m *Model) handleRefresh() {
	if err := m.manager.Refresh(context.Background()); err != nil {
		m.message = err.Error()
		return
	}
	m.grabbedID = ""
	m.clampCursors()
	m.message = "Refreshed"
}

func (m *Model) handleLogout() {
	if !m.client.IsLoggedIn() {
		m.message = "Not logged in"
		return
	}
	if err := m.client.Logout(); err != nil {
		m.message = fmt.Sprintf("Logout error: %v", err)
		return
	}
	m.message = "Logged out. Use 'taskboard auth login' to sign back in."
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, keys.Enter):
		return m.submitInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitInput advances the two-step add forms: first the title or name,
// then an optional date. An empty first step keeps the form open.
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	value := m.input.Value()

	switch m.mode {
	case ModeAddTask:
		if value == "" {
			return m, nil
		}
		m.pendingTitle = value
		m.mode = ModeAddTaskDue
		m.input.SetValue("")
		m.input.Placeholder = "Due date (YYYY-MM-DD, blank for none)..."
		return m, nil

	case ModeAddTaskDue:
		due, err := parseOptionalDate(value)
		if err != nil {
			m.message = "Invalid date, use YYYY-MM-DD"
			return m, nil
		}
		if proj := m.currentProject(); proj != nil {
			created, err := m.manager.AddTask(context.Background(), m.pendingTitle, proj.ID, model.StatusNotStarted, due)
			if err != nil {
				// Keep the form open so the user can retry
				m.message = err.Error()
				return m, nil
			}
			m.message = fmt.Sprintf("Added: %s", created.Title)
		}

	case ModeAddProject:
		if value == "" {
			return m, nil
		}
		m.pendingName = value
		m.mode = ModeAddProjectDeadline
		m.input.SetValue("")
		m.input.Placeholder = "Deadline (YYYY-MM-DD, blank for none)..."
		return m, nil

	case ModeAddProjectDeadline:
		deadline, err := parseOptionalDate(value)
		if err != nil {
			m.message = "Invalid date, use YYYY-MM-DD"
			return m, nil
		}
		created, err := m.manager.AddProject(context.Background(), m.pendingName, deadline)
		if err != nil {
			m.message = err.Error()
			return m, nil
		}
		m.message = fmt.Sprintf("Created project: %s", created.Name)
		m.projCursor = len(m.store().Projects()) - 1
		m.taskCursor = 0
	}

	m.mode = ModeNormal
	return m, nil
}
