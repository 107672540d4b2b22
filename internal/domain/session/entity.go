package session

import (
	"time"

	"fitback-api/internal/domain/user"
)

const (
	ErrMsgNotFound = "Session not found"
	ErrMsgExpired  = "Session expired"
	ErrMsgNoUser   = "Session has no user"
)

type (
	Session struct {
		ID        string
		UserID    *user.UUID
		ExpiresAt time.Time
		CreatedAt time.Time
		// User is populated when the session row references an existing user.
		User *user.User
	}
	ValidationResult struct {
		IsValid bool
		User    *user.User
		Error   string
	}
)

func (s *Session) Expired(now time.Time) bool { return !s.ExpiresAt.After(now) }
