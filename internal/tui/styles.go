package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/felwick/taskboard/internal/model"
)

// Color palette
var (
	// Status colors
	NotStarted = lipgloss.Color("#6C757D") // Gray
	InProgress = lipgloss.Color("#FFE66D") // Yellow
	Completed  = lipgloss.Color("#95E1A3") // Green
	Overdue    = lipgloss.Color("#FF6B6B") // Red

	// UI colors
	Primary   = lipgloss.Color("#4ECDC4")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
)

// Styles
var (
	// Header bar
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	// Project column
	ColumnStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1).
			MarginRight(1)

	ColumnSelectedStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(Primary).
				Padding(0, 1).
				MarginRight(1)

	ProjectTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(Primary)

	ProjectDoneStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(Completed).
				Strikethrough(true)

	// Task item
	TaskItemStyle = lipgloss.NewStyle()

	TaskItemSelectedStyle = lipgloss.NewStyle().
				Background(Surface).
				Bold(true)

	TaskGrabbedStyle = lipgloss.NewStyle().
				Foreground(Primary).
				Bold(true)

	TaskDoneStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Strikethrough(true)

	OverdueStyle = lipgloss.NewStyle().
			Foreground(Overdue)

	// Progress bar
	ProgressFilledStyle = lipgloss.NewStyle().Foreground(Completed)
	ProgressEmptyStyle  = lipgloss.NewStyle().Foreground(Border)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	// Input modal
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// StatusStyle returns the style for a task status
func StatusStyle(s model.Status) lipgloss.Style {
	switch s {
	case model.StatusInProgress:
		return lipgloss.NewStyle().Foreground(InProgress)
	case model.StatusCompleted:
		return lipgloss.NewStyle().Foreground(Completed)
	default:
		return lipgloss.NewStyle().Foreground(NotStarted)
	}
}

// StatusIcon returns the checkbox icon for a task status
func StatusIcon(s model.Status) string {
	switch s {
	case model.StatusInProgress:
		return "[~]"
	case model.StatusCompleted:
		return "[x]"
	default:
		return "[ ]"
	}
}
