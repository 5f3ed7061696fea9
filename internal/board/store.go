package board

import "github.com/felwick/taskboard/internal/model"

// Store is the in-memory authoritative client-side copy of projects and
// tasks. It is owned by the Manager and handed to the presentation layer
// by reference; nothing else mutates it. Entities are never edited in
// place: every update swaps in the whole server-confirmed record, so
// local state can not drift from what the server acknowledged.
//
// The one exception is task order: MoveTask rearranges the sequence
// locally for drag-and-drop and is never reported to the server, so the
// order resets on the next full reload.
type Store struct {
	projects []model.Project
	tasks    []model.Task
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Projects returns the ordered project sequence.
func (s *Store) Projects() []model.Project {
	return s.projects
}

// Tasks returns the ordered task sequence across all projects.
func (s *Store) Tasks() []model.Task {
	return s.tasks
}

// Project looks up a project by id.
func (s *Store) Project(id string) (model.Project, bool) {
	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return model.Project{}, false
}

// Task looks up a task by id.
func (s *Store) Task(id string) (model.Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// SetProjects replaces the whole project sequence with a fresh fetch
// result.
func (s *Store) SetProjects(projects []model.Project) {
	s.projects = projects
}

// SetTasks replaces the whole task sequence with a fresh fetch result.
func (s *Store) SetTasks(tasks []model.Task) {
	s.tasks = tasks
}

// InsertProject appends a newly created project.
func (s *Store) InsertProject(p model.Project) {
	s.projects = append(s.projects, p)
}

// InsertTask appends a newly created task.
func (s *Store) InsertTask(t model.Task) {
	s.tasks = append(s.tasks, t)
}

// ReplaceProject swaps the project with matching id for the given
// server-confirmed record. Unknown ids are ignored.
func (s *Store) ReplaceProject(id string, p model.Project) {
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects[i] = p
			return
		}
	}
}

// ReplaceTask swaps the task with matching id for the given
// server-confirmed record. Unknown ids are ignored.
func (s *Store) ReplaceTask(id string, t model.Task) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i] = t
			return
		}
	}
}

// RemoveProject deletes the project with matching id.
func (s *Store) RemoveProject(id string) {
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			return
		}
	}
}

// RemoveTask deletes the task with matching id.
func (s *Store) RemoveTask(id string) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return
		}
	}
}

// RemoveTasksOfProject deletes every task belonging to the given
// project. Used to mirror a project delete locally; the server does not
// cascade.
func (s *Store) RemoveTasksOfProject(projectID string) {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ProjectID != projectID {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
}

// MoveTask removes the task at src from the full task sequence and
// reinserts it at dst. A drop with no valid destination (either index
// out of range) is a no-op. Local-only: the server never learns about
// the new order.
func (s *Store) MoveTask(src, dst int) {
	if src < 0 || src >= len(s.tasks) || dst < 0 || dst >= len(s.tasks) || src == dst {
		return
	}

	moved := s.tasks[src]
	rest := append(s.tasks[:src], s.tasks[src+1:]...)
	s.tasks = append(rest[:dst], append([]model.Task{moved}, rest[dst:]...)...)
}
