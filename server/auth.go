package server

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/felwick/taskboard/internal/model"
)

const sessionTTL = 30 * 24 * time.Hour

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleRegister creates an account and logs it straight in.
func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request")
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "name, email and password are required")
	}

	if _, err := s.store.GetUserByEmail(req.Email); err == nil {
		return fail(c, http.StatusConflict, "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "failed to create account")
	}

	user, err := s.store.CreateUser(req.Name, req.Email, string(hash))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "failed to create account")
	}

	return s.issueSession(c, user)
}

// handleLogin authenticates with email and password.
func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request")
	}

	user, err := s.store.GetUserByEmail(req.Email)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "invalid email or password")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return fail(c, http.StatusUnauthorized, "invalid email or password")
	}

	return s.issueSession(c, user)
}

func (s *Server) issueSession(c echo.Context, user userRecord) error {
	token, err := generateToken()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "failed to create session")
	}

	if err := s.store.CreateSession(user.ID, token, time.Now().Add(sessionTTL)); err != nil {
		return fail(c, http.StatusInternalServerError, "failed to create session")
	}

	return c.JSON(http.StatusOK, model.Session{
		Token: token,
		User:  model.User{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// authMiddleware resolves the Bearer token to a user and stores the
// user id on the request context.
func (s *Server) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := c.Request().Header.Get("Authorization")
		if auth == "" {
			return fail(c, http.StatusUnauthorized, "authorization required")
		}

		token := strings.TrimPrefix(auth, "Bearer ")
		if token == auth {
			return fail(c, http.StatusUnauthorized, "invalid authorization format")
		}

		user, err := s.store.GetSessionUser(token)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fail(c, http.StatusUnauthorized, "invalid or expired token")
			}
			return fail(c, http.StatusInternalServerError, "session lookup failed")
		}

		c.Set("user_id", user.ID)
		return next(c)
	}
}

func userID(c echo.Context) string {
	id, _ := c.Get("user_id").(string)
	return id
}
