package model

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-side login session. Tokens reference a session by
// id, so deleting the row revokes the token regardless of its expiry.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its expiry time.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
