package board

import (
	"math"
	"time"

	"github.com/felwick/taskboard/internal/model"
)

// Derived presentation values. Everything here is stateless and
// recomputed from the store on each render; nothing is cached or ever
// written back.

// TasksForProject returns the project's tasks in store order.
func (s *Store) TasksForProject(projectID string) []model.Task {
	var out []model.Task
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}

// CompletionPercentage returns the rounded percentage of the project's
// tasks that are Completed, or 0 for a project with no tasks.
func (s *Store) CompletionPercentage(projectID string) int {
	total := 0
	completed := 0
	for _, t := range s.tasks {
		if t.ProjectID != projectID {
			continue
		}
		total++
		if t.Status == model.StatusCompleted {
			completed++
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// IsOverdue reports whether a due date lies strictly before now. A task
// with no due date is never overdue.
func IsOverdue(due *model.Date, now time.Time) bool {
	return due != nil && due.Before(now)
}
