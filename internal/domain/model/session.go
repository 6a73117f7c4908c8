package model

import "time"

// Session binds an opaque cookie token to its owner.
type Session struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
	// ExpiresAt is nil for sessions that live until logout.
	ExpiresAt *time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}
