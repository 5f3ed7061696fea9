package board

import (
	"testing"

	"github.com/felwick/taskboard/internal/model"
)

func task(id, projectID string, status model.Status) model.Task {
	return model.Task{ID: id, Title: "task " + id, ProjectID: projectID, Status: status}
}

func taskIDs(tasks []model.Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func assertOrder(t *testing.T, got []model.Task, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tasks %v, want %d %v", len(got), taskIDs(got), len(want), want)
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: got %s, want %s (full order %v)", i, got[i].ID, id, taskIDs(got))
		}
	}
}

func TestInsertAndReplace(t *testing.T) {
	s := NewStore()

	s.InsertProject(model.Project{ID: "p1", Name: "Website"})
	s.InsertProject(model.Project{ID: "p2", Name: "App"})
	if len(s.Projects()) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(s.Projects()))
	}

	s.ReplaceProject("p1", model.Project{ID: "p1", Name: "Website", Completed: true})
	p, ok := s.Project("p1")
	if !ok || !p.Completed {
		t.Errorf("replace did not take: %+v", p)
	}

	// Replacing an unknown id must not grow the sequence
	s.ReplaceProject("nope", model.Project{ID: "nope"})
	if len(s.Projects()) != 2 {
		t.Errorf("replace of unknown id changed length to %d", len(s.Projects()))
	}
}

func TestRemoveProject(t *testing.T) {
	s := NewStore()
	s.InsertProject(model.Project{ID: "p1"})
	s.InsertProject(model.Project{ID: "p2"})

	s.RemoveProject("p1")
	if len(s.Projects()) != 1 || s.Projects()[0].ID != "p2" {
		t.Errorf("unexpected projects after remove: %+v", s.Projects())
	}

	s.RemoveProject("p1") // already gone, no-op
	if len(s.Projects()) != 1 {
		t.Errorf("double remove changed length to %d", len(s.Projects()))
	}
}

func TestRemoveTasksOfProject(t *testing.T) {
	s := NewStore()
	s.SetTasks([]model.Task{
		task("t1", "p1", model.StatusNotStarted),
		task("t2", "p2", model.StatusInProgress),
		task("t3", "p1", model.StatusCompleted),
		task("t4", "p3", model.StatusNotStarted),
	})

	s.RemoveTasksOfProject("p1")
	assertOrder(t, s.Tasks(), "t2", "t4")
}

func TestMoveTask(t *testing.T) {
	fresh := func() *Store {
		s := NewStore()
		s.SetTasks([]model.Task{
			task("A", "p1", model.StatusNotStarted),
			task("B", "p1", model.StatusNotStarted),
			task("C", "p1", model.StatusNotStarted),
		})
		return s
	}

	s := fresh()
	s.MoveTask(0, 2)
	assertOrder(t, s.Tasks(), "B", "C", "A")

	s = fresh()
	s.MoveTask(2, 0)
	assertOrder(t, s.Tasks(), "C", "A", "B")

	s = fresh()
	s.MoveTask(1, 1)
	assertOrder(t, s.Tasks(), "A", "B", "C")
}

func TestMoveTaskNoDestination(t *testing.T) {
	s := NewStore()
	s.SetTasks([]model.Task{
		task("A", "p1", model.StatusNotStarted),
		task("B", "p1", model.StatusNotStarted),
	})

	// Dropping outside any target shows up as an out-of-range index
	s.MoveTask(0, -1)
	s.MoveTask(0, 2)
	s.MoveTask(-1, 0)
	s.MoveTask(5, 0)
	assertOrder(t, s.Tasks(), "A", "B")
}

func TestMoveTaskPreservesMultiset(t *testing.T) {
	s := NewStore()
	s.SetTasks([]model.Task{
		task("A", "p1", model.StatusNotStarted),
		task("B", "p2", model.StatusInProgress),
		task("C", "p1", model.StatusCompleted),
		task("D", "p2", model.StatusNotStarted),
	})

	s.MoveTask(3, 1)

	seen := map[string]int{}
	for _, tk := range s.Tasks() {
		seen[tk.ID]++
	}
	for _, id := range []string{"A", "B", "C", "D"} {
		if seen[id] != 1 {
			t.Errorf("task %s appears %d times after move", id, seen[id])
		}
	}
	if s.Tasks()[1].ID != "D" {
		t.Errorf("moved task not at destination: %v", taskIDs(s.Tasks()))
	}
}
