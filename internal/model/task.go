package model

import "fmt"

// Status is the workflow state of a task. Transitions are freely
// bidirectional and only ever triggered by explicit user action.
type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Statuses returns all statuses in board-column order.
func Statuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusCompleted}
}

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ParseStatus converts user input to a Status. It accepts the wire form
// ("In Progress") as well as the lowercase hyphenated form used on the
// command line ("in-progress").
func ParseStatus(s string) (Status, error) {
	switch s {
	case string(StatusNotStarted), "not-started", "todo":
		return StatusNotStarted, nil
	case string(StatusInProgress), "in-progress", "doing":
		return StatusInProgress, nil
	case string(StatusCompleted), "completed", "done":
		return StatusCompleted, nil
	}
	return "", fmt.Errorf("unknown status %q (want not-started, in-progress or completed)", s)
}

// Task is a unit of work belonging to exactly one project.
type Task struct {
	ID        string `json:"_id"`
	Title     string `json:"title"`
	ProjectID string `json:"projectId"`
	Status    Status `json:"status"`
	DueDate   *Date  `json:"dueDate,omitempty"`
}
