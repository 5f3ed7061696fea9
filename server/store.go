package server

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/felwick/taskboard/internal/model"
)

// Store is the server's persistence layer. It speaks to postgres in
// production and falls back to a local sqlite file for development and
// tests; queries are written once with ? placeholders and rebound for
// postgres.
type Store struct {
	db     *sql.DB
	driver string
}

// OpenStore opens the database behind dbURL. A postgres:// URL selects
// lib/pq; anything else is treated as a sqlite file path.
func OpenStore(dbURL string) (*Store, error) {
	driver := "sqlite"
	if strings.HasPrefix(dbURL, "postgres://") || strings.HasPrefix(dbURL, "postgresql://") {
		driver = "postgres"
	}

	db, err := sql.Open(driver, dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{db: db, driver: driver}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders to $n for postgres.
func (s *Store) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Users and sessions

type userRecord struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
}

func (s *Store) CreateUser(name, email, passwordHash string) (userRecord, error) {
	u := userRecord{ID: uuid.New().String(), Name: name, Email: email, PasswordHash: passwordHash}
	_, err := s.db.Exec(s.rebind(
		`INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`),
		u.ID, u.Name, u.Email, u.PasswordHash, now())
	return u, err
}

func (s *Store) GetUserByEmail(email string) (userRecord, error) {
	var u userRecord
	err := s.db.QueryRow(s.rebind(
		`SELECT id, name, email, password_hash FROM users WHERE email = ?`), email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	return u, err
}

func (s *Store) CreateSession(userID, token string, expiresAt time.Time) error {
	_, err := s.db.Exec(s.rebind(
		`INSERT INTO sessions (id, user_id, token, expires_at, created_at) VALUES (?, ?, ?, ?, ?)`),
		uuid.New().String(), userID, token, expiresAt.UTC().Format(time.RFC3339), now())
	return err
}

// GetSessionUser resolves a token to its user, rejecting expired
// sessions.
func (s *Store) GetSessionUser(token string) (userRecord, error) {
	var u userRecord
	var expiresAt string
	err := s.db.QueryRow(s.rebind(
		`SELECT u.id, u.name, u.email, u.password_hash, s.expires_at
		 FROM sessions s JOIN users u ON u.id = s.user_id
		 WHERE s.token = ?`), token).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &expiresAt)
	if err != nil {
		return userRecord{}, err
	}

	exp, err := time.Parse(time.RFC3339, expiresAt)
	if err != nil || time.Now().After(exp) {
		return userRecord{}, sql.ErrNoRows
	}
	return u, nil
}

// PurgeExpiredSessions removes sessions past their expiry. Run from the
// hourly cron job.
func (s *Store) PurgeExpiredSessions() (int64, error) {
	res, err := s.db.Exec(s.rebind(`DELETE FROM sessions WHERE expires_at < ?`), now())
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Projects

func (s *Store) ListProjects(userID string) ([]model.Project, error) {
	rows, err := s.db.Query(s.rebind(
		`SELECT id, name, deadline, completed FROM projects WHERE user_id = ? ORDER BY created_at, id`),
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		var p model.Project
		var deadline sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &deadline, &p.Completed); err != nil {
			return nil, err
		}
		if deadline.Valid && deadline.String != "" {
			d, err := model.ParseDate(deadline.String)
			if err == nil {
				p.Deadline = &d
			}
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *Store) GetProject(userID, id string) (model.Project, error) {
	var p model.Project
	var deadline sql.NullString
	err := s.db.QueryRow(s.rebind(
		`SELECT id, name, deadline, completed FROM projects WHERE user_id = ? AND id = ?`),
		userID, id).
		Scan(&p.ID, &p.Name, &deadline, &p.Completed)
	if err != nil {
		return model.Project{}, err
	}
	if deadline.Valid && deadline.String != "" {
		if d, err := model.ParseDate(deadline.String); err == nil {
			p.Deadline = &d
		}
	}
	return p, nil
}

func (s *Store) CreateProject(userID string, p model.Project) (model.Project, error) {
	p.ID = uuid.New().String()
	deadline := ""
	if p.Deadline != nil {
		deadline = p.Deadline.String()
	}
	_, err := s.db.Exec(s.rebind(
		`INSERT INTO projects (id, user_id, name, deadline, completed, created_at) VALUES (?, ?, ?, ?, ?, ?)`),
		p.ID, userID, p.Name, deadline, p.Completed, now())
	return p, err
}

func (s *Store) SaveProject(userID string, p model.Project) error {
	deadline := ""
	if p.Deadline != nil {
		deadline = p.Deadline.String()
	}
	_, err := s.db.Exec(s.rebind(
		`UPDATE projects SET name = ?, deadline = ?, completed = ? WHERE user_id = ? AND id = ?`),
		p.Name, deadline, p.Completed, userID, p.ID)
	return err
}

// DeleteProject removes the project row only. Tasks referencing it are
// left alone; the client mirrors the cascade in its own state.
func (s *Store) DeleteProject(userID, id string) error {
	res, err := s.db.Exec(s.rebind(`DELETE FROM projects WHERE user_id = ? AND id = ?`), userID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Tasks

func (s *Store) ListTasks(userID string) ([]model.Task, error) {
	rows, err := s.db.Query(s.rebind(
		`SELECT id, title, project_id, status, due_date FROM tasks WHERE user_id = ? ORDER BY created_at, id`),
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		var due sql.NullString
		var status string
		if err := rows.Scan(&t.ID, &t.Title, &t.ProjectID, &status, &due); err != nil {
			return nil, err
		}
		t.Status = model.Status(status)
		if due.Valid && due.String != "" {
			if d, err := model.ParseDate(due.String); err == nil {
				t.DueDate = &d
			}
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) GetTask(userID, id string) (model.Task, error) {
	var t model.Task
	var due sql.NullString
	var status string
	err := s.db.QueryRow(s.rebind(
		`SELECT id, title, project_id, status, due_date FROM tasks WHERE user_id = ? AND id = ?`),
		userID, id).
		Scan(&t.ID, &t.Title, &t.ProjectID, &status, &due)
	if err != nil {
		return model.Task{}, err
	}
	t.Status = model.Status(status)
	if due.Valid && due.String != "" {
		if d, err := model.ParseDate(due.String); err == nil {
			t.DueDate = &d
		}
	}
	return t, nil
}

func (s *Store) CreateTask(userID string, t model.Task) (model.Task, error) {
	t.ID = uuid.New().String()
	due := ""
	if t.DueDate != nil {
		due = t.DueDate.String()
	}
	_, err := s.db.Exec(s.rebind(
		`INSERT INTO tasks (id, user_id, title, project_id, status, due_date, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`),
		t.ID, userID, t.Title, t.ProjectID, string(t.Status), due, now())
	return t, err
}

func (s *Store) SaveTask(userID string, t model.Task) error {
	due := ""
	if t.DueDate != nil {
		due = t.DueDate.String()
	}
	_, err := s.db.Exec(s.rebind(
		`UPDATE tasks SET title = ?, project_id = ?, status = ?, due_date = ? WHERE user_id = ? AND id = ?`),
		t.Title, t.ProjectID, string(t.Status), due, userID, t.ID)
	return err
}

func (s *Store) DeleteTask(userID, id string) error {
	res, err := s.db.Exec(s.rebind(`DELETE FROM tasks WHERE user_id = ? AND id = ?`), userID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
