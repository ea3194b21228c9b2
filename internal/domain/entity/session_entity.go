package entity

import "time"

// Session is the server side half of a login. The session id is embedded in the
// issued tokens and must match for the tokens to be accepted.
type Session struct {
	UserID    int64
	Email     string
	SID       string
	CreatedAt time.Time
}
