package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"

	"github.com/felwick/taskboard/internal/logger"
)

// Server is the board API: auth plus project/task CRUD. Error responses
// carry a {"message": ...} envelope, which is the contract the client's
// error reporting relies on.
type Server struct {
	store *Store
	echo  *echo.Echo
	cron  *cron.Cron
}

// New creates a server over the database behind dbURL.
func New(dbURL string) (*Server, error) {
	store, err := OpenStore(dbURL)
	if err != nil {
		return nil, err
	}

	s := &Server{store: store}
	s.setupEcho()
	s.setupCron()

	return s, nil
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			logger.Info("Request",
				logger.F("method", c.Request().Method),
				logger.F("path", c.Request().URL.Path),
				logger.F("status", c.Response().Status),
				logger.F("duration", time.Since(start)))
			return err
		}
	})

	e.POST("/api/users/register", s.handleRegister)
	e.POST("/api/users/login", s.handleLogin)

	authed := e.Group("", s.authMiddleware)
	authed.GET("/projects", s.handleListProjects)
	authed.POST("/projects", s.handleCreateProject)
	authed.PUT("/projects/:id", s.handleUpdateProject)
	authed.DELETE("/projects/:id", s.handleDeleteProject)
	authed.GET("/tasks", s.handleListTasks)
	authed.POST("/tasks", s.handleCreateTask)
	authed.PUT("/tasks/:id", s.handleUpdateTask)
	authed.DELETE("/tasks/:id", s.handleDeleteTask)

	s.echo = e
}

// setupCron schedules the hourly purge of expired sessions.
func (s *Server) setupCron() {
	c := cron.New()
	_, _ = c.AddFunc("@hourly", func() {
		n, err := s.store.PurgeExpiredSessions()
		if err != nil {
			logger.Warn("Session purge failed", logger.F("error", err))
			return
		}
		if n > 0 {
			logger.Info("Purged expired sessions", logger.F("count", n))
		}
	})
	c.Start()
	s.cron = c
}

// Start begins listening on addr.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Handler exposes the routes for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Close stops the cron scheduler and closes the database.
func (s *Server) Close() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	return s.store.Close()
}

// fail renders the error envelope the client expects.
func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"message": message})
}
