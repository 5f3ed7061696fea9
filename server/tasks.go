package server

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/felwick/taskboard/internal/model"
)

// taskPatch is the decoded body of PUT /tasks/:id, all fields optional.
type taskPatch struct {
	Title     *string       `json:"title"`
	ProjectID *string       `json:"projectId"`
	Status    *model.Status `json:"status"`
	DueDate   *model.Date   `json:"dueDate"`
}

func (s *Server) handleListTasks(c echo.Context) error {
	tasks, err := s.store.ListTasks(userID(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "failed to list tasks")
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(c echo.Context) error {
	var req struct {
		Title     string       `json:"title"`
		ProjectID string       `json:"projectId"`
		Status    model.Status `json:"status"`
		DueDate   *model.Date  `json:"dueDate"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request")
	}
	if req.Title == "" {
		return fail(c, http.StatusBadRequest, "task title is required")
	}
	if req.ProjectID == "" {
		return fail(c, http.StatusBadRequest, "a project is required")
	}
	if _, err := s.store.GetProject(userID(c), req.ProjectID); err != nil {
		return fail(c, http.StatusNotFound, "project not found")
	}

	status := req.Status
	if status == "" {
		status = model.StatusNotStarted
	}
	if !status.Valid() {
		return fail(c, http.StatusBadRequest, "invalid task status")
	}

	created, err := s.store.CreateTask(userID(c), model.Task{
		Title:     req.Title,
		ProjectID: req.ProjectID,
		Status:    status,
		DueDate:   req.DueDate,
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "failed to create task")
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	task, err := s.store.GetTask(userID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "task not found")
		}
		return fail(c, http.StatusInternalServerError, "failed to load task")
	}

	var patch taskPatch
	if err := c.Bind(&patch); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request")
	}

	if patch.Title != nil {
		if *patch.Title == "" {
			return fail(c, http.StatusBadRequest, "task title is required")
		}
		task.Title = *patch.Title
	}
	if patch.ProjectID != nil {
		if _, err := s.store.GetProject(userID(c), *patch.ProjectID); err != nil {
			return fail(c, http.StatusNotFound, "project not found")
		}
		task.ProjectID = *patch.ProjectID
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return fail(c, http.StatusBadRequest, "invalid task status")
		}
		task.Status = *patch.Status
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}

	if err := s.store.SaveTask(userID(c), task); err != nil {
		return fail(c, http.StatusInternalServerError, "failed to update task")
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	if err := s.store.DeleteTask(userID(c), c.Param("id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "task not found")
		}
		return fail(c, http.StatusInternalServerError, "failed to delete task")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "task deleted"})
}
