package api

import "github.com/felwick/taskboard/internal/model"

// The API accepts PUT requests carrying an arbitrary subset of entity
// fields. Rather than sending free-form maps, each partial update the
// client actually performs gets its own payload type naming exactly the
// fields it carries.

// ProjectCompletedPatch marks a project complete. There is no payload
// that un-completes a project; the transition is one-way.
type ProjectCompletedPatch struct {
	Completed bool `json:"completed"`
}

// TaskStatusPatch moves a task to a new workflow status.
type TaskStatusPatch struct {
	Status model.Status `json:"status"`
}

// CreateProjectRequest is the body of POST /projects.
type CreateProjectRequest struct {
	Name     string      `json:"name"`
	Deadline *model.Date `json:"deadline,omitempty"`
}

// CreateTaskRequest is the body of POST /tasks.
type CreateTaskRequest struct {
	Title     string       `json:"title"`
	ProjectID string       `json:"projectId"`
	Status    model.Status `json:"status"`
	DueDate   *model.Date  `json:"dueDate,omitempty"`
}
