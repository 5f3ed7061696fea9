package server

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/felwick/taskboard/internal/model"
)

// projectPatch is the decoded body of PUT /projects/:id. Every field is
// optional; only fields present in the request are applied.
type projectPatch struct {
	Name      *string     `json:"name"`
	Deadline  *model.Date `json:"deadline"`
	Completed *bool       `json:"completed"`
}

func (s *Server) handleListProjects(c echo.Context) error {
	projects, err := s.store.ListProjects(userID(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "failed to list projects")
	}
	return c.JSON(http.StatusOK, projects)
}

func (s *Server) handleCreateProject(c echo.Context) error {
	var req struct {
		Name     string      `json:"name"`
		Deadline *model.Date `json:"deadline"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request")
	}
	if req.Name == "" {
		return fail(c, http.StatusBadRequest, "project name is required")
	}

	created, err := s.store.CreateProject(userID(c), model.Project{
		Name:     req.Name,
		Deadline: req.Deadline,
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "failed to create project")
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) handleUpdateProject(c echo.Context) error {
	uid := c.Param("id")

	project, err := s.store.GetProject(userID(c), uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "project not found")
		}
		return fail(c, http.StatusInternalServerError, "failed to load project")
	}

	var patch projectPatch
	if err := c.Bind(&patch); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request")
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return fail(c, http.StatusBadRequest, "project name is required")
		}
		project.Name = *patch.Name
	}
	if patch.Deadline != nil {
		project.Deadline = patch.Deadline
	}
	if patch.Completed != nil {
		// completed is one-way: once set it stays set
		if project.Completed && !*patch.Completed {
			return fail(c, http.StatusBadRequest, "a completed project cannot be reopened")
		}
		project.Completed = *patch.Completed
	}

	if err := s.store.SaveProject(userID(c), project); err != nil {
		return fail(c, http.StatusInternalServerError, "failed to update project")
	}
	return c.JSON(http.StatusOK, project)
}

// handleDeleteProject deletes the project row. Tasks are intentionally
// not cascaded; the client removes them from its own state.
func (s *Server) handleDeleteProject(c echo.Context) error {
	if err := s.store.DeleteProject(userID(c), c.Param("id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "project not found")
		}
		return fail(c, http.StatusInternalServerError, "failed to delete project")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "project deleted"})
}
