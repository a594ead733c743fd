package sessions

import "time"

// Session is the record behind one issued token. The credentials are the
// caller's own database login, kept in memory only so that every query the
// session makes can re-authenticate against the database itself. They are
// never persisted and never logged.
type Session struct {
	Username     string
	Password     string
	CreatedAt    time.Time
	LastActivity time.Time
}
