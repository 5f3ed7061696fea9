package server

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/felwick/taskboard/internal/api"
	"github.com/felwick/taskboard/internal/model"
)

func timeIn(t *testing.T, hours int) time.Time {
	t.Helper()
	return time.Now().Add(time.Duration(hours) * time.Hour)
}

// newTestServer spins up the full stack on sqlite and returns an API
// client logged in as a fresh account.
func newTestServer(t *testing.T) *api.Client {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	srv, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = srv.Close() })

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	client, err := api.NewClient()
	if err != nil {
		t.Fatal(err)
	}
	if err := client.SetServer(ts.URL); err != nil {
		t.Fatal(err)
	}
	if err := client.Register(context.Background(), "Ada", "ada@example.com", "hunter2"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return client
}

func TestRegisterThenLogin(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()

	if got := client.CurrentUser().Name; got != "Ada" {
		t.Errorf("CurrentUser().Name = %q", got)
	}

	// Fresh login with the same credentials
	if err := client.Logout(); err != nil {
		t.Fatal(err)
	}
	if err := client.Login(ctx, "ada@example.com", "hunter2"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Wrong password is rejected with the error envelope
	err := client.Login(ctx, "ada@example.com", "wrong")
	if err == nil {
		t.Fatal("expected login failure")
	}
	if api.ErrorMessage(err) != "invalid email or password" {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestDuplicateEmailRejected(t *testing.T) {
	client := newTestServer(t)
	err := client.Register(context.Background(), "Eve", "ada@example.com", "pw")
	if err == nil || api.ErrorMessage(err) != "email already registered" {
		t.Errorf("expected duplicate email rejection, got %v", err)
	}
}

func TestProjectAndTaskCRUD(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()

	deadline, _ := model.ParseDate("2026-12-01")
	project, err := client.CreateProject(ctx, api.CreateProjectRequest{
		Name:     "Website",
		Deadline: &deadline,
	})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if project.ID == "" {
		t.Fatal("server did not assign a project id")
	}
	if project.Completed {
		t.Error("new project should not be completed")
	}

	task, err := client.CreateTask(ctx, api.CreateTaskRequest{
		Title:     "Design homepage",
		ProjectID: project.ID,
		Status:    model.StatusNotStarted,
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if task.ID == "" || task.ProjectID != project.ID {
		t.Fatalf("unexpected task record: %+v", task)
	}

	// Partial status update returns the whole updated record
	updated, err := client.UpdateTask(ctx, task.ID, api.TaskStatusPatch{Status: model.StatusInProgress})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Status != model.StatusInProgress || updated.Title != "Design homepage" {
		t.Errorf("partial update mangled the record: %+v", updated)
	}

	projects, err := client.ListProjects(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(projects) != 1 || projects[0].Deadline == nil || projects[0].Deadline.String() != "2026-12-01" {
		t.Errorf("unexpected project list: %+v", projects)
	}

	tasks, err := client.ListTasks(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || tasks[0].Status != model.StatusInProgress {
		t.Errorf("unexpected task list: %+v", tasks)
	}
}

func TestMarkProjectCompleteIsOneWay(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()

	project, err := client.CreateProject(ctx, api.CreateProjectRequest{Name: "P"})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := client.UpdateProject(ctx, project.ID, api.ProjectCompletedPatch{Completed: true})
	if err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}
	if !updated.Completed {
		t.Error("project not completed")
	}

	_, err = client.UpdateProject(ctx, project.ID, api.ProjectCompletedPatch{Completed: false})
	if err == nil {
		t.Fatal("reopening a completed project should be rejected")
	}
	if api.ErrorMessage(err) != "a completed project cannot be reopened" {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestDeleteProjectDoesNotCascadeServerSide(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()

	project, err := client.CreateProject(ctx, api.CreateProjectRequest{Name: "Doomed"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.CreateTask(ctx, api.CreateTaskRequest{
		Title:     "Orphan-to-be",
		ProjectID: project.ID,
		Status:    model.StatusNotStarted,
	}); err != nil {
		t.Fatal(err)
	}

	if err := client.DeleteProject(ctx, project.ID); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}

	projects, err := client.ListProjects(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(projects) != 0 {
		t.Errorf("project not deleted: %+v", projects)
	}

	// The task row survives on the server; only the client cascades
	tasks, err := client.ListTasks(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 {
		t.Errorf("server should not cascade task deletes, got %d tasks", len(tasks))
	}
}

func TestTaskValidation(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()

	_, err := client.CreateTask(ctx, api.CreateTaskRequest{Title: "", ProjectID: "x"})
	if err == nil || api.ErrorMessage(err) != "task title is required" {
		t.Errorf("missing title: %v", err)
	}

	_, err = client.CreateTask(ctx, api.CreateTaskRequest{Title: "T", ProjectID: "does-not-exist"})
	if err == nil || api.ErrorMessage(err) != "project not found" {
		t.Errorf("unknown project: %v", err)
	}

	_, err = client.CreateProject(ctx, api.CreateProjectRequest{Name: ""})
	if err == nil || api.ErrorMessage(err) != "project name is required" {
		t.Errorf("missing name: %v", err)
	}
}

func TestRequestsRequireAuth(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	srv, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = srv.Close() })

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	client, err := api.NewClient()
	if err != nil {
		t.Fatal(err)
	}
	if err := client.SetServer(ts.URL); err != nil {
		t.Fatal(err)
	}

	_, err = client.ListProjects(context.Background())
	if err == nil || api.ErrorMessage(err) != "authorization required" {
		t.Errorf("expected auth rejection, got %v", err)
	}
}

func TestSessionPurge(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "purge.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	user, err := store.CreateUser("Ada", "ada@example.com", "hash")
	if err != nil {
		t.Fatal(err)
	}

	// One live session, one long expired
	if err := store.CreateSession(user.ID, "live", timeIn(t, 1)); err != nil {
		t.Fatal(err)
	}
	if err := store.CreateSession(user.ID, "dead", timeIn(t, -1)); err != nil {
		t.Fatal(err)
	}

	n, err := store.PurgeExpiredSessions()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("purged %d sessions, want 1", n)
	}
	if _, err := store.GetSessionUser("live"); err != nil {
		t.Errorf("live session should survive: %v", err)
	}
	if _, err := store.GetSessionUser("dead"); err == nil {
		t.Error("expired session should be gone")
	}
}
