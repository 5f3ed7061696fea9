package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/felwick/taskboard/internal/logger"
	"github.com/felwick/taskboard/internal/model"
)

// Client talks to the remote board API. All durable state lives behind
// the server; the client only persists its session token between runs.
type Client struct {
	sessionPath string
	session     sessionFile
	httpClient  *http.Client
}

// NewClient creates a client, loading any persisted session from
// ~/.taskboard/session.json.
func NewClient() (*Client, error) {
	path, err := defaultSessionPath()
	if err != nil {
		return nil, err
	}

	c := &Client{
		sessionPath: path,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
	c.loadSession()

	return c, nil
}

// SetServer changes the server URL and persists it.
func (c *Client) SetServer(url string) error {
	c.session.ServerURL = url
	return c.saveSession()
}

// ServerURL returns the configured server URL.
func (c *Client) ServerURL() string {
	return c.session.ServerURL
}

// IsLoggedIn reports whether a session token is present.
func (c *Client) IsLoggedIn() bool {
	return c.session.Token != ""
}

// CurrentUser returns the user the persisted session belongs to.
func (c *Client) CurrentUser() model.User {
	return c.session.User
}

// ListProjects fetches the full ordered project list.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// ListTasks fetches the full ordered task list across all projects.
func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateProject creates a project and returns the server-assigned record.
func (c *Client) CreateProject(ctx context.Context, req CreateProjectRequest) (model.Project, error) {
	var created model.Project
	if err := c.do(ctx, http.MethodPost, "/projects", req, &created); err != nil {
		return model.Project{}, err
	}
	return created, nil
}

// CreateTask creates a task and returns the server-assigned record.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (model.Task, error) {
	var created model.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", req, &created); err != nil {
		return model.Task{}, err
	}
	return created, nil
}

// UpdateProject applies a partial update and returns the updated record.
func (c *Client) UpdateProject(ctx context.Context, id string, patch ProjectCompletedPatch) (model.Project, error) {
	var updated model.Project
	if err := c.do(ctx, http.MethodPut, "/projects/"+id, patch, &updated); err != nil {
		return model.Project{}, err
	}
	return updated, nil
}

// UpdateTask applies a partial update and returns the updated record.
func (c *Client) UpdateTask(ctx context.Context, id string, patch TaskStatusPatch) (model.Task, error) {
	var updated model.Task
	if err := c.do(ctx, http.MethodPut, "/tasks/"+id, patch, &updated); err != nil {
		return model.Task{}, err
	}
	return updated, nil
}

// DeleteProject deletes a project. The server does not cascade to the
// project's tasks; the board state manager mirrors the delete locally.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+id, nil, nil)
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+id, nil, nil)
}

// do issues one request and decodes the response into out (when non-nil).
// Any non-2xx response becomes an *Error carrying the server's message.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	url := c.session.ServerURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	logger.Debug("HTTP request", logger.F("method", method), logger.F("url", url))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("HTTP request failed", logger.F("error", err), logger.F("url", url))
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	logger.Debug("HTTP response", logger.F("status", resp.StatusCode), logger.F("url", url))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
