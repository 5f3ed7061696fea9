package model

// Project is a named container for tasks, optionally with a deadline.
// The ID is assigned by the server at creation and never changes.
type Project struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Deadline  *Date  `json:"deadline,omitempty"`
	Completed bool   `json:"completed"`
}
