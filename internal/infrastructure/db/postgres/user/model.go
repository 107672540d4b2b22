package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		UUID       uuid.UUID
		ExternalID *string
		Email      string
		Role       string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)
