package api

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/felwick/taskboard/internal/model"
)

// sessionFile is the on-disk shape of ~/.taskboard/session.json. Besides
// the session itself it remembers which server the session belongs to.
type sessionFile struct {
	ServerURL string     `json:"server_url"`
	Token     string     `json:"token"`
	User      model.User `json:"user"`
}

const defaultServerURL = "http://localhost:8080"

func defaultSessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taskboard", "session.json"), nil
}

func (c *Client) loadSession() {
	data, err := os.ReadFile(c.sessionPath)
	if err != nil {
		c.session = sessionFile{ServerURL: defaultServerURL}
		return
	}

	c.session = sessionFile{}
	_ = json.Unmarshal(data, &c.session)
	if c.session.ServerURL == "" {
		c.session.ServerURL = defaultServerURL
	}
}

// saveSession writes the session file under a file lock so that
// concurrent CLI invocations do not interleave writes.
func (c *Client) saveSession() error {
	dir := filepath.Dir(c.sessionPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	lock := flock.New(c.sessionPath + ".lock")
	if err := lock.Lock(); err != nil {
		return err
	}
	defer func() {
		_ = lock.Unlock()
	}()

	data, err := json.MarshalIndent(c.session, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.sessionPath, data, 0600)
}
