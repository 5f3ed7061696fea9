package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/felwick/taskboard/internal/board"
)

const columnWidth = 30

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	columns := m.renderColumns()
	statusBar := m.renderStatusBar()

	mainContent := lipgloss.JoinVertical(lipgloss.Left, header, columns)

	switch m.mode {
	case ModeAddTask, ModeAddTaskDue, ModeAddProject, ModeAddProjectDeadline:
		mainContent = lipgloss.Place(
			m.width, m.height-2,
			lipgloss.Center, lipgloss.Center,
			m.renderInputModal(),
			lipgloss.WithWhitespaceChars(" "),
		)
	case ModeConfirmDelete:
		mainContent = lipgloss.Place(
			m.width, m.height-2,
			lipgloss.Center, lipgloss.Center,
			m.renderConfirmModal(),
			lipgloss.WithWhitespaceChars(" "),
		)
	case ModeHelp:
		mainContent = m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, statusBar)
}

func (m Model) renderHeader() string {
	title := "TaskBoard"
	if m.client.IsLoggedIn() {
		title = fmt.Sprintf("TaskBoard  |  Welcome, %s", m.client.CurrentUser().Name)
	}
	return HeaderStyle.Render(title)
}

func (m Model) renderColumns() string {
	projects := m.store().Projects()
	if len(projects) == 0 {
		return HelpStyle.Padding(1, 2).Render("No projects yet. Press 'p' to create one.")
	}

	var cols []string
	for i := range projects {
		cols = append(cols, m.renderColumn(i))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m Model) renderColumn(idx int) string {
	p := m.store().Projects()[idx]
	selected := idx == m.projCursor
	tasks := m.store().TasksForProject(p.ID)

	titleStyle := ProjectTitleStyle
	if p.Completed {
		titleStyle = ProjectDoneStyle
	}
	title := titleStyle.Render(truncate(p.Name, columnWidth-6))
	if p.Completed {
		title += " ✓"
	}

	s := title + "\n"

	if p.Deadline != nil {
		deadline := "due " + p.Deadline.Format("2006-01-02")
		if !p.Completed && board.IsOverdue(p.Deadline, time.Now()) {
			s += OverdueStyle.Render(deadline) + "\n"
		} else {
			s += HelpStyle.Render(deadline) + "\n"
		}
	}

	s += m.renderProgress(p.ID) + "\n"
	s += lipgloss.NewStyle().Foreground(Border).Render(repeat("─", columnWidth-4)) + "\n"

	if len(tasks) == 0 {
		s += HelpStyle.Render("No tasks")
	}

	for j, t := range tasks {
		cursor := "  "
		style := TaskItemStyle
		if selected && j == m.taskCursor {
			cursor = "❯ "
			style = TaskItemSelectedStyle
		}
		if t.ID == m.grabbedID {
			cursor = "◆ "
			style = TaskGrabbedStyle
		}

		icon := StatusStyle(t.Status).Render(StatusIcon(t.Status))
		line := cursor + icon + " " + style.Render(truncate(t.Title, columnWidth-10))
		s += line + "\n"

		if t.DueDate != nil {
			due := "     " + t.DueDate.Format("2006-01-02")
			if board.IsOverdue(t.DueDate, time.Now()) {
				s += OverdueStyle.Render(due+" !") + "\n"
			} else {
				s += HelpStyle.Render(due) + "\n"
			}
		}
	}

	colStyle := ColumnStyle
	if selected {
		colStyle = ColumnSelectedStyle
	}
	return colStyle.Width(columnWidth).Render(s)
}

// renderProgress draws the completion bar for a project column.
func (m Model) renderProgress(projectID string) string {
	pct := m.store().CompletionPercentage(projectID)
	barWidth := columnWidth - 10
	filled := barWidth * pct / 100

	bar := ProgressFilledStyle.Render(repeat("█", filled)) +
		ProgressEmptyStyle.Render(repeat("░", barWidth-filled))
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

func (m Model) renderStatusBar() string {
	help := "a:add  s:status  c:complete  d/D:delete  m:move  p:project  r:refresh  ?:help  q:quit"
	if m.message != "" {
		help = m.message
	}
	return StatusBarStyle.Width(m.width).Render(help)
}

func (m Model) renderInputModal() string {
	title := "Add Task"
	switch m.mode {
	case ModeAddTaskDue:
		title = "Due Date"
	case ModeAddProject:
		title = "New Project"
	case ModeAddProjectDeadline:
		title = "Project Deadline"
	}

	proj := m.currentProject()
	if proj != nil && m.mode == ModeAddTask {
		title = fmt.Sprintf("Add Task to: %s", proj.Name)
	}

	content := lipgloss.NewStyle().Bold(true).Render(title) + "\n\n"
	content += m.input.View() + "\n\n"
	content += HelpStyle.Render("Enter:save  Esc:cancel")

	return ModalStyle.Render(content)
}

func (m Model) renderConfirmModal() string {
	content := lipgloss.NewStyle().Bold(true).Foreground(Overdue).Render("Confirm Delete") + "\n\n"
	if m.confirmKind == "project" {
		count := len(m.store().TasksForProject(m.confirmID))
		content += fmt.Sprintf("Delete project %q and its %d task(s)?\n\n", m.confirmLabel, count)
	} else {
		content += fmt.Sprintf("Delete task %q?\n\n", m.confirmLabel)
	}
	content += HelpStyle.Render("y:delete  n:cancel")

	return ModalStyle.Render(content)
}

func (m Model) renderHelp() string {
	help := `
╭──── Keyboard Shortcuts ────╮
│                            │
│  Navigation                │
│  ──────────                │
│  h/←     Previous project  │
│  l/→     Next project      │
│  j/↓     Move down         │
│  k/↑     Move up           │
│                            │
│  Tasks                     │
│  ─────                     │
│  a       Add task          │
│  s       Cycle status      │
│  1/2/3   Set status        │
│  d       Delete task       │
│  m       Grab/drop task    │
│                            │
│  Projects                  │
│  ────────                  │
│  p       New project       │
│  c       Complete project  │
│  D       Delete project    │
│                            │
│  Other                     │
│  ─────                     │
│  r       Refresh           │
│  L       Logout            │
│  ?       Toggle help       │
│  q       Quit              │
│                            │
╰────────────────────────────╯

      Press any key to close
`
	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, help)
}
