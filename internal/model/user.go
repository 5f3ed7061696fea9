package model

// User is the account a session belongs to. The client only ever reads
// the display name; everything else is opaque server data.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is an authenticated login as returned by the auth endpoints
// and persisted across invocations.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// LoggedIn reports whether the session carries a token.
func (s *Session) LoggedIn() bool {
	return s.Token != ""
}
