package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is one row of SelectSessionWithUser; user columns are NULL when the join misses.
type Session struct {
	ID        string
	UserID    *uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time

	UserUUID       *uuid.UUID
	UserExternalID *string
	UserEmail      *string
	UserRole       *string
	UserCreatedAt  *time.Time
	UserUpdatedAt  *time.Time
}
