package api

import (
	"context"
	"net/http"

	"github.com/felwick/taskboard/internal/logger"
	"github.com/felwick/taskboard/internal/model"
)

// Login authenticates with email and password and persists the returned
// session token.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var session model.Session
	if err := c.do(ctx, http.MethodPost, "/api/users/login", body, &session); err != nil {
		return err
	}

	c.session.Token = session.Token
	c.session.User = session.User
	logger.Info("Logged in", logger.F("user", session.User.Name))
	return c.saveSession()
}

// Register creates a new account. A successful registration logs the
// user straight in.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}

	var session model.Session
	if err := c.do(ctx, http.MethodPost, "/api/users/register", body, &session); err != nil {
		return err
	}

	c.session.Token = session.Token
	c.session.User = session.User
	logger.Info("Registered", logger.F("user", session.User.Name))
	return c.saveSession()
}

// Logout clears the persisted session.
func (c *Client) Logout() error {
	c.session.Token = ""
	c.session.User = model.User{}
	logger.Info("Logged out")
	return c.saveSession()
}
